package orderevents

const (
	TopicName        = "order"
	orderCreatedName = TopicName + ".created"
)

type OrderCreated struct {
	OrderUID          string
	PaymentReference  string
	Source            string
	UserID            string
	Email             string
	AmountInCents     int64
	Currency          string
	Status            string
	LineItemCount     int
	LineItemsEncoding string
	// Anomaly marks orders recorded without a usable cart
	Anomaly bool
}

func (e OrderCreated) GetEventTypeName() string {
	return orderCreatedName
}

func (e OrderCreated) GetAggregateName() string {
	return e.PaymentReference
}

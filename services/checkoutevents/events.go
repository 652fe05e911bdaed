package checkoutevents

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".started"
	checkoutCompletedName = TopicName + ".completed"
)

type CheckoutStarted struct {
	CheckoutUID   string
	ProviderName  string
	Mode          string
	AmountInCents int64
	Currency      string
	ShopperUID    string
	ShopperEmail  string
	PromoCode     string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutStatus string

const (
	CheckoutStatusSuccess CheckoutStatus = "success"
	CheckoutStatusPending CheckoutStatus = "pending"
	CheckoutStatusFailed  CheckoutStatus = "failed"
)

// CheckoutCompleted is emitted each time a transport observes the status of a checkout
type CheckoutCompleted struct {
	CheckoutUID           string
	ProviderName          string
	Source                string
	CheckoutStatus        CheckoutStatus
	CheckoutStatusDetails string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.CheckoutUID
}

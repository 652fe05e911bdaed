package paystack

import "time"

type Status string

const (
	StatusInitialized Status = "initialized"
	StatusSuccess     Status = "success"
	StatusFailed      Status = "failed"
	StatusPending     Status = "pending"
)

// Transaction is the gateway view of a single checkout attempt
type Transaction struct {
	ID               int64
	Reference        string
	Status           Status
	AmountMinorUnits int64
	Currency         string
	CustomerEmail    string
	CustomerID       string
	Metadata         map[string]any
	CreatedAt        time.Time
	PaidAt           *time.Time
}

type InitializeResult struct {
	CheckoutURL string
	AccessCode  string
}

// statusFromProvider maps the statuses paystack reports onto the three we act upon
func statusFromProvider(status string) Status {
	switch status {
	case "success":
		return StatusSuccess
	case "failed", "abandoned", "reversed":
		return StatusFailed
	default:
		return StatusPending
	}
}

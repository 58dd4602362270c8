package stripeapi

// IntentStatus is the small status enum this service cares about. Anything
// the processor reports outside the known set maps to IntentStatusOther.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusFailed                IntentStatus = "failed"
	IntentStatusCanceled              IntentStatus = "canceled"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusOther                 IntentStatus = "other"
)

func ParseIntentStatus(s string) IntentStatus {
	switch IntentStatus(s) {
	case IntentStatusRequiresPaymentMethod, IntentStatusFailed, IntentStatusCanceled, IntentStatusSucceeded:
		return IntentStatus(s)
	default:
		return IntentStatusOther
	}
}

// PaymentIntent is the typed snapshot of a processor charge attempt. Parsed
// at the adapter boundary; never persisted.
type PaymentIntent struct {
	ID             string       `json:"id"`
	Status         IntentStatus `json:"status"`
	Amount         int64        `json:"amount"`
	Currency       string       `json:"currency"`
	Created        int64        `json:"created"`
	CustomerID     string       `json:"customer_id,omitempty"`
	FailureMessage string       `json:"failure_message,omitempty"`
}

type CustomerProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Country string `json:"country"`
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

type ChargeResult struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Succeeded      bool   `json:"succeeded"`
	FailureMessage string `json:"failure_message,omitempty"`
}

// ListRequest asks for one page of payment intents. Zero range bounds are
// left out of the query; StartingAfter carries the cursor of the previous
// page's last item.
type ListRequest struct {
	CreatedFrom   int64
	CreatedTo     int64
	StartingAfter string
	Limit         int64
}

type ListPage struct {
	Items      []*PaymentIntent
	HasMore    bool
	NextCursor string
}

// ChargeRequest creates and confirms a brand-new charge against an existing
// customer payment method. OriginalIntentID is attached as metadata so the
// new charge links back to the failure it recovers.
type ChargeRequest struct {
	Amount           int64
	Currency         string
	CustomerID       string
	PaymentMethodID  string
	OriginalIntentID string
}

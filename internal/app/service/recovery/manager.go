package recovery

import (
	"context"

	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
)

type FailedTransactionsRequest struct {
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
}

// FailedTransaction is one failed charge inside a customer group.
type FailedTransaction struct {
	ID      string `json:"id"`
	Amount  int64  `json:"amount"`
	Created int64  `json:"created"`
	Status  string `json:"status"`
}

// CustomerFailureGroup aggregates a customer's failed charges in a single
// currency. Rebuilt fresh on every query; never persisted.
type CustomerFailureGroup struct {
	CustomerID      string               `json:"customer_id"`
	Currency        string               `json:"currency"`
	TotalAmount     int64                `json:"total_amount"`
	FailedCount     int                  `json:"failed_count"`
	LatestFailureAt int64                `json:"latest_failure_at"`
	Transactions    []*FailedTransaction `json:"transactions"`

	// Filled by enrichment.
	Email               string `json:"email"`
	Country             string `json:"country"`
	PaymentMethodsCount int    `json:"payment_methods_count"`
}

type FailedTransactionsResponse struct {
	Groups       []*CustomerFailureGroup `json:"groups"`
	TotalGroups  int                     `json:"total_groups"`
	TotalScanned int                     `json:"total_scanned"`
}

type RetryPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	CustomerID      string `json:"customer_id"`
}

// RetryAttempt is the outcome of one payment method during a retry. The full
// ordered trail goes back to the caller so it can see exactly which methods
// were tried and why each failed.
type RetryAttempt struct {
	PaymentMethodID string `json:"payment_method_id"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4"`
	Success         bool   `json:"success"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
}

type RetryPaymentResponse struct {
	Success            bool            `json:"success"`
	Message            string          `json:"message"`
	Attempts           []*RetryAttempt `json:"attempts"`
	NewPaymentIntentID string          `json:"new_payment_intent_id,omitempty"`
}

// Manager is the caller-facing surface of the recovery engine.
type Manager interface {
	// FailedTransactions fetches, groups and enriches the user's failed
	// charges in the requested window.
	FailedTransactions(ctx context.Context, userID string, req *FailedTransactionsRequest) (*FailedTransactionsResponse, error)
	// RetryPayment retries a failed charge across the customer's payment
	// methods, stopping at the first success.
	RetryPayment(ctx context.Context, userID string, req *RetryPaymentRequest) (*RetryPaymentResponse, error)
}

// CredentialSource supplies the processor secret for a user. Implemented by
// the account service; the engine trusts the identity it is handed.
type CredentialSource interface {
	GetCredentialForUser(ctx context.Context, userID string) (string, error)
}

// Ledger persists successful recoveries exactly once per (user, charge).
type Ledger interface {
	Record(ctx context.Context, e *ledger.Entry) error
}

// Clients builds a processor client bound to one credential.
type Clients = stripeapi.Factory

package stripeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
)

var (
	// ErrNotFound: the referenced charge, customer, or payment method does
	// not exist on the processor side.
	ErrNotFound = errors.New("stripeapi: resource not found")
	// ErrUnavailable: transport or processor-side transient failure. Safe
	// for the caller to retry manually.
	ErrUnavailable = errors.New("stripeapi: processor unavailable")
)

// RejectedError is a definitive decline from the processor (card declined,
// invalid parameters). Retrying the same call will not help.
type RejectedError struct {
	Reason string
	Code   string
}

func (e *RejectedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripeapi: rejected (%s): %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("stripeapi: rejected: %s", e.Reason)
}

// mapErr converts raw SDK errors into the adapter's typed taxonomy. Nothing
// is swallowed at this layer.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		// transport-level failure, no processor verdict
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if sErr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, sErr.Msg)
	}
	switch sErr.Type {
	case stripe.ErrorTypeCard, stripe.ErrorTypeInvalidRequest, stripe.ErrorTypeIdempotency:
		return &RejectedError{Reason: sErr.Msg, Code: string(sErr.Code)}
	default:
		return fmt.Errorf("%w: %s", ErrUnavailable, sErr.Msg)
	}
}

package recovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
)

func refIntent() *stripeapi.PaymentIntent {
	return &stripeapi.PaymentIntent{
		ID:         "pi_orig",
		Status:     stripeapi.IntentStatusRequiresPaymentMethod,
		Amount:     2500,
		Currency:   "usd",
		Created:    1700000000,
		CustomerID: "cus_a",
	}
}

func cards(ids ...string) []*stripeapi.PaymentMethod {
	out := make([]*stripeapi.PaymentMethod, 0, len(ids))
	for _, id := range ids {
		out = append(out, &stripeapi.PaymentMethod{ID: id, Brand: "visa", Last4: "4242"})
	}
	return out
}

func TestRetryAcrossMethods_StopsAtFirstSuccess(t *testing.T) {
	cli := newFakeClient()
	cli.chargeFn = func(req *stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error) {
		if req.PaymentMethodID == "pm_a" {
			return &stripeapi.ChargeResult{ID: "pi_a", Status: "failed", Succeeded: false, FailureMessage: "card declined"}, nil
		}
		return &stripeapi.ChargeResult{ID: "pi_b", Status: "succeeded", Succeeded: true}, nil
	}
	s := newTestService(cli, &fakeLedger{})

	out := s.retryAcrossMethods(context.Background(), cli, refIntent(), cards("pm_a", "pm_b", "pm_c"))

	require.True(t, out.success)
	require.Equal(t, "pm_b", out.winner.ID)
	require.Equal(t, "pi_b", out.result.ID)
	// pm_c is never tried once pm_b succeeds.
	require.Len(t, out.attempts, 2)
	require.Len(t, cli.chargeCalls, 2)
	require.False(t, out.attempts[0].Success)
	require.Equal(t, "card declined", out.attempts[0].Error)
	require.True(t, out.attempts[1].Success)
	require.Equal(t, "payment successful with visa ending in 4242", out.message)
}

func TestRetryAcrossMethods_AllDeclined(t *testing.T) {
	cli := newFakeClient()
	cli.chargeFn = func(*stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error) {
		return nil, &stripeapi.RejectedError{Reason: "insufficient funds", Code: "card_declined"}
	}
	s := newTestService(cli, &fakeLedger{})

	out := s.retryAcrossMethods(context.Background(), cli, refIntent(), cards("pm_a", "pm_b"))

	require.False(t, out.success)
	require.Len(t, out.attempts, 2)
	require.Equal(t, "all 2 payment methods failed", out.message)
	for _, a := range out.attempts {
		require.False(t, a.Success)
		// The decline reason, not the wrapped error string, reaches the caller.
		require.Equal(t, "insufficient funds", a.Error)
	}
}

func TestRetryAcrossMethods_TransportErrorContinuesToNextMethod(t *testing.T) {
	cli := newFakeClient()
	cli.chargeFn = func(req *stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error) {
		if req.PaymentMethodID == "pm_a" {
			return nil, stripeapi.ErrUnavailable
		}
		return &stripeapi.ChargeResult{ID: "pi_new", Status: "succeeded", Succeeded: true}, nil
	}
	s := newTestService(cli, &fakeLedger{})

	out := s.retryAcrossMethods(context.Background(), cli, refIntent(), cards("pm_a", "pm_b"))

	require.True(t, out.success)
	require.Len(t, out.attempts, 2)
	require.False(t, out.attempts[0].Success)
	require.True(t, out.attempts[1].Success)
}

func TestRetryAcrossMethods_ChargeCarriesReferenceFields(t *testing.T) {
	cli := newFakeClient()
	s := newTestService(cli, &fakeLedger{})

	out := s.retryAcrossMethods(context.Background(), cli, refIntent(), cards("pm_a"))

	require.True(t, out.success)
	require.Len(t, cli.chargeCalls, 1)
	req := cli.chargeCalls[0]
	require.Equal(t, int64(2500), req.Amount)
	require.Equal(t, "usd", req.Currency)
	require.Equal(t, "cus_a", req.CustomerID)
	require.Equal(t, "pi_orig", req.OriginalIntentID)
}

package recovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
)

func TestFailedTransactions_EndToEnd(t *testing.T) {
	cli := newFakeClient()
	cli.pages = []*stripeapi.ListPage{
		{
			Items: []*stripeapi.PaymentIntent{
				pi("pi_1", "cus_a", stripeapi.IntentStatusFailed, 1000, 50, "usd"),
				pi("pi_2", "cus_b", stripeapi.IntentStatusSucceeded, 9000, 60, "usd"),
			},
			HasMore:    true,
			NextCursor: "pi_2",
		},
		{
			Items: []*stripeapi.PaymentIntent{
				pi("pi_3", "cus_a", stripeapi.IntentStatusRequiresPaymentMethod, 500, 70, "usd"),
				pi("pi_4", "", stripeapi.IntentStatusFailed, 700, 80, "usd"),
			},
			HasMore: false,
		},
	}
	cli.customers["cus_a"] = &stripeapi.CustomerProfile{ID: "cus_a", Email: "a@example.com", Country: "US"}
	cli.methods["cus_a"] = cards("pm_1")
	s := newTestService(cli, &fakeLedger{})

	res, err := s.FailedTransactions(context.Background(), "user-1", &FailedTransactionsRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Equal(t, 4, res.TotalScanned)
	require.Equal(t, 1, res.TotalGroups)

	g := res.Groups[0]
	require.Equal(t, "cus_a", g.CustomerID)
	require.Equal(t, 2, g.FailedCount)
	require.Equal(t, int64(1500), g.TotalAmount)
	require.Equal(t, "a@example.com", g.Email)
	require.Equal(t, 1, g.PaymentMethodsCount)
}

func TestFailedTransactions_CredentialMissing(t *testing.T) {
	s := newTestService(newFakeClient(), &fakeLedger{})
	s.credentials = &fakeCredentials{err: account.ErrCredentialMissing}

	_, err := s.FailedTransactions(context.Background(), "user-1", nil)
	require.ErrorIs(t, err, account.ErrCredentialMissing)
}

func TestFailedTransactions_InvalidDate(t *testing.T) {
	s := newTestService(newFakeClient(), &fakeLedger{})

	_, err := s.FailedTransactions(context.Background(), "user-1", &FailedTransactionsRequest{StartDate: "01/02/2026"})
	require.Error(t, err)
}

func TestRetryPayment_SuccessRecordsLedgerOnce(t *testing.T) {
	cli := newFakeClient()
	cli.intents["pi_orig"] = refIntent()
	cli.methods["cus_a"] = cards("pm_a")
	cli.customers["cus_a"] = &stripeapi.CustomerProfile{ID: "cus_a", Email: "a@example.com"}
	led := &fakeLedger{}
	s := newTestService(cli, led)

	res, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_orig",
		CustomerID:      "cus_a",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "pi_new", res.NewPaymentIntentID)

	require.Len(t, led.entries, 1)
	e := led.entries[0]
	require.Equal(t, "user-1", e.UserID)
	// The ledger is keyed by the original failed charge, not the new one.
	require.Equal(t, "pi_orig", e.PaymentIntentID)
	require.Equal(t, "pi_new", e.NewPaymentIntentID)
	require.Equal(t, "a@example.com", e.CustomerEmail)
	require.Equal(t, int64(2500), e.Amount)
	require.Equal(t, "pm_a", e.PaymentMethodID)
	require.Equal(t, 1, e.AttemptCount)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), *e.OriginalFailedAt)
}

func TestRetryPayment_EmailLookupFailureStillRecords(t *testing.T) {
	cli := newFakeClient()
	cli.intents["pi_orig"] = refIntent()
	cli.methods["cus_a"] = cards("pm_a")
	cli.customerErr["cus_a"] = stripeapi.ErrUnavailable
	led := &fakeLedger{}
	s := newTestService(cli, led)

	res, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_orig",
		CustomerID:      "cus_a",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, led.entries, 1)
	require.Empty(t, led.entries[0].CustomerEmail)
}

func TestRetryPayment_NoPaymentMethodsIsTerminalNotError(t *testing.T) {
	cli := newFakeClient()
	cli.intents["pi_orig"] = refIntent()
	led := &fakeLedger{}
	s := newTestService(cli, led)

	res, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_orig",
		CustomerID:      "cus_a",
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "no payment methods found for customer", res.Message)
	require.NotNil(t, res.Attempts)
	require.Empty(t, res.Attempts)
	require.Empty(t, led.entries)
}

func TestRetryPayment_AllMethodsFailSkipsLedger(t *testing.T) {
	cli := newFakeClient()
	cli.intents["pi_orig"] = refIntent()
	cli.methods["cus_a"] = cards("pm_a", "pm_b")
	cli.chargeFn = func(*stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error) {
		return nil, &stripeapi.RejectedError{Reason: "card declined"}
	}
	led := &fakeLedger{}
	s := newTestService(cli, led)

	res, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_orig",
		CustomerID:      "cus_a",
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Len(t, res.Attempts, 2)
	require.Empty(t, led.entries)
}

func TestRetryPayment_LedgerErrorDoesNotFailTheRetry(t *testing.T) {
	cli := newFakeClient()
	cli.intents["pi_orig"] = refIntent()
	cli.methods["cus_a"] = cards("pm_a")
	led := &fakeLedger{err: context.DeadlineExceeded}
	s := newTestService(cli, led)

	res, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_orig",
		CustomerID:      "cus_a",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, led.entries, 1)
}

func TestRetryPayment_UnknownIntent(t *testing.T) {
	cli := newFakeClient()
	s := newTestService(cli, &fakeLedger{})

	_, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{
		PaymentIntentID: "pi_missing",
		CustomerID:      "cus_a",
	})
	require.ErrorIs(t, err, stripeapi.ErrNotFound)
}

func TestRetryPayment_MissingFields(t *testing.T) {
	s := newTestService(newFakeClient(), &fakeLedger{})

	_, err := s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{CustomerID: "cus_a"})
	require.Error(t, err)
	_, err = s.RetryPayment(context.Background(), "user-1", &RetryPaymentRequest{PaymentIntentID: "pi_1"})
	require.Error(t, err)
}

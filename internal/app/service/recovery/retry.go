package recovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/logctx"
	"github.com/lunarpay/reclaim/pkg/metrics"
)

type retryOutcome struct {
	success  bool
	message  string
	attempts []*RetryAttempt
	winner   *stripeapi.PaymentMethod
	result   *stripeapi.ChargeResult
}

func attemptErrReason(err error) string {
	var rej *stripeapi.RejectedError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return err.Error()
}

// retryAcrossMethods tries the customer's payment methods strictly in
// adapter order, creating and confirming a fresh charge per method. Method
// N+1 is never attempted before N's outcome is known: the first success
// short-circuits the loop. Per-method errors become failed attempts and
// iteration continues with the next method.
func (s *Service) retryAcrossMethods(ctx context.Context, cli stripeapi.Client, ref *stripeapi.PaymentIntent, methods []*stripeapi.PaymentMethod) *retryOutcome {
	out := &retryOutcome{attempts: make([]*RetryAttempt, 0, len(methods))}

	for _, m := range methods {
		res, err := cli.CreateAndConfirmCharge(ctx, &stripeapi.ChargeRequest{
			Amount:           ref.Amount,
			Currency:         ref.Currency,
			CustomerID:       ref.CustomerID,
			PaymentMethodID:  m.ID,
			OriginalIntentID: ref.ID,
		})
		if err != nil {
			metrics.RecoveryAttempts.WithLabelValues("failed").Inc()
			out.attempts = append(out.attempts, &RetryAttempt{
				PaymentMethodID: m.ID,
				Brand:           m.Brand,
				Last4:           m.Last4,
				Success:         false,
				Status:          "failed",
				Error:           attemptErrReason(err),
			})
			logctx.FromCtx(ctx, s.log).Infow("retry attempt failed",
				"payment_intent_id", ref.ID,
				"payment_method_id", m.ID,
				"err", err)
			continue
		}

		attempt := &RetryAttempt{
			PaymentMethodID: m.ID,
			Brand:           m.Brand,
			Last4:           m.Last4,
			Success:         res.Succeeded,
			Status:          res.Status,
			Error:           res.FailureMessage,
		}
		out.attempts = append(out.attempts, attempt)
		if res.Succeeded {
			metrics.RecoveryAttempts.WithLabelValues("succeeded").Inc()
		} else {
			metrics.RecoveryAttempts.WithLabelValues("failed").Inc()
		}

		if res.Succeeded {
			out.success = true
			out.winner = m
			out.result = res
			out.message = fmt.Sprintf("payment successful with %s ending in %s", m.Brand, m.Last4)
			return out
		}
	}

	out.message = fmt.Sprintf("all %d payment methods failed", len(methods))
	return out
}

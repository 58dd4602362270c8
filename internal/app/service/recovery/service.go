package recovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/config"
	"github.com/lunarpay/reclaim/pkg/logctx"
	types "github.com/lunarpay/reclaim/pkg/types"
)

type Service struct {
	cfg         *config.Config
	log         *zap.SugaredLogger
	credentials CredentialSource
	ledger      Ledger
	clients     Clients
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, credentials CredentialSource, led Ledger, clients Clients) Manager {
	return &Service{cfg: cfg, log: log, credentials: credentials, ledger: led, clients: clients}
}

func (s *Service) pageSize() int64 {
	if s.cfg != nil && s.cfg.Recovery.PageSize > 0 {
		return s.cfg.Recovery.PageSize
	}
	return 100
}

func (s *Service) defaultWindowDays() int {
	if s.cfg != nil && s.cfg.Recovery.DefaultWindowDays > 0 {
		return s.cfg.Recovery.DefaultWindowDays
	}
	return 7
}

func (s *Service) clientForUser(ctx context.Context, userID string) (stripeapi.Client, error) {
	secret, err := s.credentials.GetCredentialForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.clients(secret), nil
}

func (s *Service) FailedTransactions(ctx context.Context, userID string, req *FailedTransactionsRequest) (*FailedTransactionsResponse, error) {
	if req == nil {
		req = &FailedTransactionsRequest{}
	}
	cli, err := s.clientForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	window, err := types.NewTimeWindow(req.StartDate, req.EndDate, s.defaultWindowDays())
	if err != nil {
		return nil, err
	}

	intents, err := s.listAllPaymentIntents(ctx, cli, window)
	if err != nil {
		return nil, err
	}

	groups := groupFailures(intents)
	s.enrichGroups(ctx, cli, groups)

	logctx.FromCtx(ctx, s.log).Infow("failed transactions fetched",
		"user_id", userID,
		"scanned", len(intents),
		"groups", len(groups))

	return &FailedTransactionsResponse{
		Groups:       groups,
		TotalGroups:  len(groups),
		TotalScanned: len(intents),
	}, nil
}

func (s *Service) RetryPayment(ctx context.Context, userID string, req *RetryPaymentRequest) (*RetryPaymentResponse, error) {
	if req == nil || req.PaymentIntentID == "" || req.CustomerID == "" {
		return nil, fmt.Errorf("payment intent id and customer id are required")
	}
	cli, err := s.clientForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Amount and currency come from the reference charge, read once.
	ref, err := cli.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference charge: %w", err)
	}
	if ref.CustomerID == "" {
		ref.CustomerID = req.CustomerID
	}

	methods, err := cli.ListPaymentMethods(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	if len(methods) == 0 {
		// Normal terminal outcome, not an error.
		return &RetryPaymentResponse{
			Success:  false,
			Message:  "no payment methods found for customer",
			Attempts: []*RetryAttempt{},
		}, nil
	}

	outcome := s.retryAcrossMethods(ctx, cli, ref, methods)

	resp := &RetryPaymentResponse{
		Success:  outcome.success,
		Message:  outcome.message,
		Attempts: outcome.attempts,
	}
	if !outcome.success {
		return resp, nil
	}

	resp.NewPaymentIntentID = outcome.result.ID

	// Email snapshot for the ledger row. Best effort: a lookup failure
	// degrades to an empty email, it never fails a succeeded retry.
	var customerEmail string
	if profile, perr := cli.GetCustomer(ctx, req.CustomerID); perr == nil {
		customerEmail = profile.Email
	} else {
		logctx.FromCtx(ctx, s.log).Warnw("customer lookup for ledger snapshot failed",
			"customer_id", req.CustomerID,
			"err", perr)
	}

	failedAt := time.Unix(ref.Created, 0).UTC()
	entry := &ledger.Entry{
		UserID:             userID,
		PaymentIntentID:    ref.ID,
		NewPaymentIntentID: outcome.result.ID,
		CustomerID:         req.CustomerID,
		CustomerEmail:      customerEmail,
		Amount:             ref.Amount,
		Currency:           ref.Currency,
		CardBrand:          outcome.winner.Brand,
		CardLast4:          outcome.winner.Last4,
		PaymentMethodID:    outcome.winner.ID,
		OriginalFailedAt:   &failedAt,
		AttemptCount:       len(outcome.attempts),
		OriginalStatus:     string(ref.Status),
	}
	// The payment already succeeded; a bookkeeping failure must not turn it
	// into a payment failure for the caller.
	if err := s.ledger.Record(ctx, entry); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("failed to record recovery",
			"user_id", userID,
			"payment_intent_id", ref.ID,
			"err", err)
	}
	return resp, nil
}

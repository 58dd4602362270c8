package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/lunarpay/reclaim/internal/models"
	"github.com/lunarpay/reclaim/pkg/logctx"
	"github.com/lunarpay/reclaim/pkg/tool"
	types "github.com/lunarpay/reclaim/pkg/types"
)

// Entry is what the retry flow hands the ledger when a charge is recovered.
type Entry struct {
	UserID             string
	PaymentIntentID    string
	NewPaymentIntentID string
	CustomerID         string
	CustomerEmail      string
	Amount             int64
	Currency           string
	CardBrand          string
	CardLast4          string
	PaymentMethodID    string
	OriginalFailedAt   *time.Time
	AttemptCount       int
	OriginalStatus     string
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (e *Entry) toModel(now time.Time) *models.Recovery {
	return &models.Recovery{
		ID:                 tool.GenerateUUIDV7(),
		UserID:             e.UserID,
		PaymentIntentID:    e.PaymentIntentID,
		NewPaymentIntentID: e.NewPaymentIntentID,
		CustomerID:         e.CustomerID,
		CustomerEmail:      e.CustomerEmail,
		Amount:             e.Amount,
		Currency:           types.NormalizeCurrency(e.Currency),
		CardBrand:          e.CardBrand,
		CardLast4:          e.CardLast4,
		PaymentMethodID:    e.PaymentMethodID,
		RecoveredAt:        now,
		OriginalFailedAt:   e.OriginalFailedAt,
		Extra: datatypes.NewJSONType(&models.RecoveryExtra{
			AttemptCount:   e.AttemptCount,
			OriginalStatus: e.OriginalStatus,
		}),
	}
}

// Record persists one recovery, exactly once per (user, charge) pair. A
// duplicate insert means the charge was already recorded, possibly by a
// concurrent caller, and is a success no-op: the payment went through either
// way, so bookkeeping duplication must never surface as a payment failure.
// The race is settled by the database's unique constraint, not by locks here.
func (s *Service) Record(ctx context.Context, e *Entry) error {
	if e == nil {
		return fmt.Errorf("nil ledger entry")
	}
	if e.UserID == "" || e.PaymentIntentID == "" {
		return fmt.Errorf("ledger entry missing user or payment intent id")
	}

	rec := e.toModel(time.Now())
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "payment_intent_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			logctx.FromCtx(ctx, s.log).Infow("recovery already recorded",
				"user_id", e.UserID, "payment_intent_id", e.PaymentIntentID)
			return nil
		}
		return fmt.Errorf("failed to record recovery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		logctx.FromCtx(ctx, s.log).Infow("recovery already recorded",
			"user_id", e.UserID, "payment_intent_id", e.PaymentIntentID)
		return nil
	}

	logctx.FromCtx(ctx, s.log).Infow("recovery recorded",
		"user_id", e.UserID,
		"payment_intent_id", e.PaymentIntentID,
		"new_payment_intent_id", e.NewPaymentIntentID,
		"amount", e.Amount,
		"currency", rec.Currency)
	return nil
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	models "github.com/lunarpay/reclaim/internal/models"
	types "github.com/lunarpay/reclaim/pkg/types"
)

type CurrencyTotal struct {
	Currency    string `json:"currency"`
	TotalAmount int64  `json:"total_amount"`
	Count       int64  `json:"count"`
}

type LastRecovery struct {
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	RecoveredAt   time.Time `json:"recovered_at"`
	CustomerEmail string    `json:"customer_email"`
}

type Summary struct {
	TotalsByCurrency []CurrencyTotal `json:"totals_by_currency"`
	TotalRecoveries  int64           `json:"total_recoveries"`
	LastRecovery     *LastRecovery   `json:"last_recovery,omitempty"`
}

type MonthlyPoint struct {
	Month       string `json:"month"`
	TotalAmount int64  `json:"total_amount"`
	Count       int64  `json:"count"`
}

func (s *Service) windowed(ctx context.Context, userID string, w types.TimeWindow) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Recovery{}).Where("user_id = ?", userID)
	if !w.From.IsZero() {
		q = q.Where("recovered_at >= ?", w.From)
	}
	if !w.To.IsZero() {
		q = q.Where("recovered_at <= ?", w.To)
	}
	return q
}

// GetSummary aggregates recovered amounts per currency for a user, plus the
// most recent recovery in the window.
func (s *Service) GetSummary(ctx context.Context, userID string, w types.TimeWindow) (*Summary, error) {
	var totals []CurrencyTotal
	err := s.windowed(ctx, userID, w).
		Select("currency, SUM(amount) AS total_amount, COUNT(*) AS count").
		Group("currency").
		Order("currency").
		Find(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recoveries: %w", err)
	}

	summary := &Summary{TotalsByCurrency: totals}
	for _, t := range totals {
		summary.TotalRecoveries += t.Count
	}

	var last models.Recovery
	err = s.windowed(ctx, userID, w).Order("recovered_at DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load last recovery: %w", err)
	}
	if err == nil {
		summary.LastRecovery = &LastRecovery{
			Amount:        last.Amount,
			Currency:      last.Currency,
			RecoveredAt:   last.RecoveredAt,
			CustomerEmail: last.CustomerEmail,
		}
	}
	return summary, nil
}

// GetMonthly returns per-month recovered totals for one currency.
func (s *Service) GetMonthly(ctx context.Context, userID, currency string, w types.TimeWindow) ([]MonthlyPoint, error) {
	var points []MonthlyPoint
	err := s.windowed(ctx, userID, w).
		Where("currency = ?", types.NormalizeCurrency(currency)).
		Select("TO_CHAR(recovered_at, 'YYYY-MM') AS month, SUM(amount) AS total_amount, COUNT(*) AS count").
		Group("TO_CHAR(recovered_at, 'YYYY-MM')").
		Order("month").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly recoveries: %w", err)
	}
	return points, nil
}

// GetRecent lists the newest recoveries for a user.
func (s *Service) GetRecent(ctx context.Context, userID string, limit int) ([]*models.Recovery, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []*models.Recovery
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recovered_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent recoveries: %w", err)
	}
	return rows, nil
}

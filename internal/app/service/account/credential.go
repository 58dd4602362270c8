package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/lunarpay/reclaim/pkg/logctx"
)

// GetCredentialForUser resolves the processor secret the caller's requests
// must run under. Returns ErrCredentialMissing when the user never
// configured one.
func (s *Service) GetCredentialForUser(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.ProcessorKeyConfigured || user.ProcessorKey == nil || *user.ProcessorKey == "" {
		return "", ErrCredentialMissing
	}
	return *user.ProcessorKey, nil
}

// SetProcessorKey stores the user's processor secret and flips the
// configured flag. Secret keys always carry the "sk_" prefix.
func (s *Service) SetProcessorKey(ctx context.Context, userID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("processor key is required")
	}
	if !strings.HasPrefix(key, "sk_") {
		return fmt.Errorf("invalid processor key: must start with \"sk_\"")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.ProcessorKey = &key
	user.ProcessorKeyConfigured = true
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save processor key: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("processor key configured", "user_id", userID)
	return nil
}

func (s *Service) ClearProcessorKey(ctx context.Context, userID string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.ProcessorKey = nil
	user.ProcessorKeyConfigured = false
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to clear processor key: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("processor key cleared", "user_id", userID)
	return nil
}

func (s *Service) CredentialStatus(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.ProcessorKeyConfigured, nil
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow_ExplicitDates(t *testing.T) {
	w, err := NewTimeWindow("2026-01-01", "2026-01-31", 7)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.From)
	// End date is inclusive: the bound sits at the end of that day.
	require.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), w.To)
}

func TestNewTimeWindow_DefaultsToLookback(t *testing.T) {
	w, err := NewTimeWindow("", "", 7)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), w.To, 5*time.Second)
	require.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), w.From, 5*time.Second)
}

func TestNewTimeWindow_OpenBounds(t *testing.T) {
	w, err := NewTimeWindow("2026-01-01", "", 7)
	require.NoError(t, err)
	require.False(t, w.From.IsZero())
	require.True(t, w.To.IsZero())
	require.Zero(t, w.ToUnix())
	require.NotZero(t, w.FromUnix())
}

func TestNewTimeWindow_RejectsBadFormat(t *testing.T) {
	_, err := NewTimeWindow("01/02/2026", "", 7)
	require.Error(t, err)
	_, err = NewTimeWindow("", "2026-13-40", 7)
	require.Error(t, err)
}

func TestNormalizeCurrency(t *testing.T) {
	require.Equal(t, "USD", NormalizeCurrency("usd"))
	require.Equal(t, "EUR", NormalizeCurrency(" eur "))
	require.Equal(t, "USD", NormalizeCurrency(""))
}

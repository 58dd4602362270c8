package types

import "strings"

// NormalizeCurrency maps processor currency codes (case-insensitive on input)
// to the uppercase 3-letter form stored and reported by this service.
func NormalizeCurrency(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return "USD"
	}
	return c
}

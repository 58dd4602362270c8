package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered UUID. Used for primary keys so
// recovery and user rows insert in roughly chronological order.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

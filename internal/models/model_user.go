package models

import (
	"time"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is a dashboard account. The processor credential lives on the user
// row: one opaque secret key per account, owned exclusively by it.
type User struct {
	ID           string   `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Email        string   `gorm:"column:email;type:varchar(255);not null;uniqueIndex:unique_user_email" json:"email"`
	Name         string   `gorm:"column:name;type:varchar(255);not null" json:"name"`
	PasswordHash string   `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"column:role;type:varchar(32);not null;default:'user'" json:"role"`

	// ProcessorKey is the user's payment-processor secret. Nil means the
	// account has no processor configured; ProcessorKeyConfigured mirrors
	// that state for cheap lookups.
	ProcessorKey           *string `gorm:"column:processor_key;type:text" json:"-"`
	ProcessorKeyConfigured bool    `gorm:"column:processor_key_configured;not null;default:false" json:"processor_key_configured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}

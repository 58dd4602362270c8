package models

import (
	"time"

	"gorm.io/datatypes"
)

type RecoveryExtra struct {
	// AttemptCount is how many payment methods were tried before success.
	AttemptCount int `json:"attempt_count"`
	// OriginalStatus is the processor status of the failed charge at retry time.
	OriginalStatus string `json:"original_status,omitempty"`
}

// Recovery records one successful retry of a failed charge. The pair
// (user_id, payment_intent_id) is unique: a charge is recovered at most once
// per account, enforced by the composite index so concurrent writers race
// safely inside the database.
type Recovery struct {
	ID     string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:unique_user_payment_intent,priority:1;index:idx_user_recovered,priority:1" json:"user_id"`
	// PaymentIntentID is the originating failed charge.
	PaymentIntentID string `gorm:"column:payment_intent_id;type:varchar(64);not null;uniqueIndex:unique_user_payment_intent,priority:2" json:"payment_intent_id"`
	// NewPaymentIntentID is the fresh charge that succeeded.
	NewPaymentIntentID string `gorm:"column:new_payment_intent_id;type:varchar(64);not null" json:"new_payment_intent_id"`

	CustomerID    string `gorm:"column:customer_id;type:varchar(64);not null" json:"customer_id"`
	CustomerEmail string `gorm:"column:customer_email;type:varchar(255)" json:"customer_email"`
	Amount        int64  `gorm:"column:amount;type:bigint;not null" json:"amount"`
	// Currency is stored uppercase.
	Currency string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`

	CardBrand       string `gorm:"column:card_brand;type:varchar(32)" json:"card_brand"`
	CardLast4       string `gorm:"column:card_last4;type:varchar(8)" json:"card_last4"`
	PaymentMethodID string `gorm:"column:payment_method_id;type:varchar(64)" json:"payment_method_id"`

	RecoveredAt      time.Time  `gorm:"column:recovered_at;not null;index:idx_user_recovered,priority:2,sort:desc" json:"recovered_at"`
	OriginalFailedAt *time.Time `gorm:"column:original_failed_at;default:null" json:"original_failed_at"`

	Extra     datatypes.JSONType[*RecoveryExtra] `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt time.Time                          `json:"updated_at"`
}

func (Recovery) TableName() string {
	return "recovery"
}

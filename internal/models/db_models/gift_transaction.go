package db_models

import (
	"github.com/google/uuid"
)

type GiftTransactionStatus string

const (
	GiftTxnStatusCreated        GiftTransactionStatus = "CREATED"
	GiftTxnStatusPaymentPending GiftTransactionStatus = "PAYMENT_PENDING"
	GiftTxnStatusPaymentFailed  GiftTransactionStatus = "PAYMENT_FAILED"
	GiftTxnStatusAvailable      GiftTransactionStatus = "AVAILABLE" // paid but not yet sent
	GiftTxnStatusDelivered      GiftTransactionStatus = "DELIVERED"
	GiftTxnStatusCancelled      GiftTransactionStatus = "CANCELLED"
)

// GiftTransaction is one purchased-and-eventually-sent gift, tied 1:1 to the
// PaymentToken that paid for it. RecipientID is bound only on delivery, after
// the recipient is confirmed against the sender's live match list.
type GiftTransaction struct {
	BaseModel
	GiftID         uuid.UUID `gorm:"index"`
	PaymentTokenID uuid.UUID `gorm:"uniqueIndex"`
	SenderID       string    `gorm:"index"`
	RecipientID    *string
	MatchID        *string
	AmountCents    int64
	Currency       string                `gorm:"size:3"`
	Status         GiftTransactionStatus `gorm:"index"`
	DeliveredAt    *int64

	Gift         Gift         `gorm:"foreignKey:GiftID"`
	PaymentToken PaymentToken `gorm:"foreignKey:PaymentTokenID"`
}

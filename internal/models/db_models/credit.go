package db_models

import (
	"github.com/google/uuid"
)

// CreditWallet holds the authoritative credit balance for one user. The
// balance is updated transactionally with the ledger entry that changes it,
// never recomputed from history on read.
type CreditWallet struct {
	BaseModel
	UserID   string `gorm:"uniqueIndex"`
	Balance  int64  `gorm:"default:0"`
	Currency string `gorm:"size:3"`
}

type CreditTransactionType string

const (
	CreditTxnTypePurchase   CreditTransactionType = "PURCHASE"
	CreditTxnTypeSpend      CreditTransactionType = "SPEND"
	CreditTxnTypeAdjustment CreditTransactionType = "ADJUSTMENT"
)

type CreditTransactionStatus string

const (
	CreditTxnStatusCreated    CreditTransactionStatus = "CREATED"
	CreditTxnStatusPending    CreditTransactionStatus = "PENDING"
	CreditTxnStatusSuccessful CreditTransactionStatus = "SUCCESSFUL"
	CreditTxnStatusFailed     CreditTransactionStatus = "FAILED"
	CreditTxnStatusCancelled  CreditTransactionStatus = "CANCELLED"
)

// CreditTransaction is one ledger entry against a wallet. PaymentTokenID is
// set only for entries that originate from a purchase.
type CreditTransaction struct {
	BaseModel
	WalletID       uuid.UUID  `gorm:"index"`
	UserID         string     `gorm:"index"`
	PaymentTokenID *uuid.UUID `gorm:"index"`
	Type           CreditTransactionType   `gorm:"index"`
	Status         CreditTransactionStatus `gorm:"index"`
	Credits        int64
	AmountCents    int64
	Currency       string `gorm:"size:3"`
	Description    string

	Wallet CreditWallet `gorm:"foreignKey:WalletID"`
}

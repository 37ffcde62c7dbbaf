package db_models

import (
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "CREATED"
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusDeclined   PaymentStatus = "DECLINED"
	PaymentStatusExpired    PaymentStatus = "EXPIRED"
	PaymentStatusError      PaymentStatus = "ERROR"
)

// IsFailure reports whether the gateway settled the payment unsuccessfully.
func (s PaymentStatus) IsFailure() bool {
	switch s {
	case PaymentStatusFailed, PaymentStatusDeclined, PaymentStatusExpired, PaymentStatusError:
		return true
	}
	return false
}

type PaymentItemType string

const (
	ItemTypeOneTime      PaymentItemType = "one_time"
	ItemTypeOrder        PaymentItemType = "order"
	ItemTypeSubscription PaymentItemType = "subscription"
)

// PaymentToken tracks one hosted-checkout attempt end-to-end. It is the
// single source of truth for payment status; the gateway's return redirect
// and webhook both reconcile into this row and are never allowed to
// downgrade a SUCCESSFUL status.
type PaymentToken struct {
	BaseModel
	Token       string `gorm:"uniqueIndex"` // opaque string exposed to the client
	UserID      string `gorm:"index"`
	ItemType    PaymentItemType
	AmountCents int64
	Currency    string `gorm:"size:3"` // ISO 4217
	Description string
	Status      PaymentStatus `gorm:"index"`
	TestMode    bool

	// Gateway fields, nullable until the gateway responds
	GatewayUID *string        `gorm:"index"`
	RawPayload datatypes.JSON `gorm:"type:jsonb;default:'{}'"` // last gateway payload
}

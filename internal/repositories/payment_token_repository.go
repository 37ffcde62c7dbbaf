package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
)

type PaymentTokenRepositoryInterface interface {
	Create(ctx context.Context, token *db_models.PaymentToken) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentToken, error)
	GetByToken(ctx context.Context, token string) (*db_models.PaymentToken, error)
	GetByGatewayUID(ctx context.Context, gatewayUID string) (*db_models.PaymentToken, error)

	// MarkCheckoutCreated moves a freshly created token to PENDING and
	// records the checkout token the gateway issued for it.
	MarkCheckoutCreated(ctx context.Context, id uuid.UUID, gatewayUID string) error
	MarkFailed(ctx context.Context, id uuid.UUID) error

	// ApplyGatewayUpdate writes a mapped callback status onto the token. The
	// update is guarded so a stale callback can never overwrite a SUCCESSFUL
	// status with anything else.
	ApplyGatewayUpdate(ctx context.Context, id uuid.UUID, status db_models.PaymentStatus, gatewayUID *string, rawPayload []byte) error
}

func NewPaymentTokenRepository(db *gorm.DB) PaymentTokenRepositoryInterface {
	return &PaymentTokenRepository{db: db}
}

type PaymentTokenRepository struct {
	db *gorm.DB
}

func (r *PaymentTokenRepository) Create(ctx context.Context, token *db_models.PaymentToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *PaymentTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentToken, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *PaymentTokenRepository) GetByToken(ctx context.Context, token string) (*db_models.PaymentToken, error) {
	return r.getOne(ctx, "token = ?", token)
}

func (r *PaymentTokenRepository) GetByGatewayUID(ctx context.Context, gatewayUID string) (*db_models.PaymentToken, error) {
	return r.getOne(ctx, "gateway_uid = ?", gatewayUID)
}

func (r *PaymentTokenRepository) getOne(ctx context.Context, query string, arg interface{}) (*db_models.PaymentToken, error) {
	var token db_models.PaymentToken
	err := r.db.WithContext(ctx).Where(query, arg).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *PaymentTokenRepository) MarkCheckoutCreated(ctx context.Context, id uuid.UUID, gatewayUID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PaymentToken{}).
		Where("id = ? AND status = ?", id, db_models.PaymentStatusCreated).
		Updates(map[string]interface{}{
			"status":      db_models.PaymentStatusPending,
			"gateway_uid": gatewayUID,
		}).Error
}

func (r *PaymentTokenRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PaymentToken{}).
		Where("id = ? AND status <> ?", id, db_models.PaymentStatusSuccessful).
		Update("status", db_models.PaymentStatusFailed).Error
}

func (r *PaymentTokenRepository) ApplyGatewayUpdate(ctx context.Context, id uuid.UUID, status db_models.PaymentStatus, gatewayUID *string, rawPayload []byte) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if gatewayUID != nil && *gatewayUID != "" {
		updates["gateway_uid"] = *gatewayUID
	}
	if rawPayload != nil {
		updates["raw_payload"] = rawPayload
	}

	return r.db.WithContext(ctx).
		Model(&db_models.PaymentToken{}).
		Where("id = ? AND status <> ?", id, db_models.PaymentStatusSuccessful).
		Updates(updates).Error
}

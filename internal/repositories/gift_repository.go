package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
)

type GiftRepositoryInterface interface {
	GetActiveGift(ctx context.Context, giftID uuid.UUID) (*db_models.Gift, error)
	ListActiveGifts(ctx context.Context) ([]db_models.Gift, error)

	CreateTransaction(ctx context.Context, txn *db_models.GiftTransaction) error
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*db_models.GiftTransaction, error)
	GetTransactionByPaymentTokenID(ctx context.Context, paymentTokenID uuid.UUID) (*db_models.GiftTransaction, error)
	ListTransactionsBySender(ctx context.Context, senderID string) ([]db_models.GiftTransaction, error)

	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status db_models.GiftTransactionStatus, deliveredAt *int64) error

	// MarkDelivered binds the recipient to an AVAILABLE transaction. The
	// status check lives in the WHERE clause so a concurrent double send
	// can flip at most one of the two calls. Returns false when no row
	// was in AVAILABLE state.
	MarkDelivered(ctx context.Context, id uuid.UUID, recipientID string, matchID string, deliveredAt int64) (bool, error)
}

func NewGiftRepository(db *gorm.DB) GiftRepositoryInterface {
	return &GiftRepository{db: db}
}

type GiftRepository struct {
	db *gorm.DB
}

func (r *GiftRepository) GetActiveGift(ctx context.Context, giftID uuid.UUID) (*db_models.Gift, error) {
	var gift db_models.Gift
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = TRUE", giftID).
		First(&gift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepository) ListActiveGifts(ctx context.Context) ([]db_models.Gift, error) {
	var gifts []db_models.Gift
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("amount_cents ASC").
		Find(&gifts).Error
	if err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *GiftRepository) CreateTransaction(ctx context.Context, txn *db_models.GiftTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *GiftRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*db_models.GiftTransaction, error) {
	return r.getTransaction(ctx, "id = ?", id)
}

func (r *GiftRepository) GetTransactionByPaymentTokenID(ctx context.Context, paymentTokenID uuid.UUID) (*db_models.GiftTransaction, error) {
	return r.getTransaction(ctx, "payment_token_id = ?", paymentTokenID)
}

func (r *GiftRepository) getTransaction(ctx context.Context, query string, arg interface{}) (*db_models.GiftTransaction, error) {
	var txn db_models.GiftTransaction
	err := r.db.WithContext(ctx).Where(query, arg).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *GiftRepository) ListTransactionsBySender(ctx context.Context, senderID string) ([]db_models.GiftTransaction, error) {
	var txns []db_models.GiftTransaction
	err := r.db.WithContext(ctx).
		Preload("Gift").
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *GiftRepository) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status db_models.GiftTransactionStatus, deliveredAt *int64) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if deliveredAt != nil {
		updates["delivered_at"] = *deliveredAt
	}

	return r.db.WithContext(ctx).
		Model(&db_models.GiftTransaction{}).
		Where("id = ? AND status <> ?", id, db_models.GiftTxnStatusDelivered).
		Updates(updates).Error
}

func (r *GiftRepository) MarkDelivered(ctx context.Context, id uuid.UUID, recipientID string, matchID string, deliveredAt int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.GiftTransaction{}).
		Where("id = ? AND status = ?", id, db_models.GiftTxnStatusAvailable).
		Updates(map[string]interface{}{
			"status":       db_models.GiftTxnStatusDelivered,
			"recipient_id": recipientID,
			"match_id":     matchID,
			"delivered_at": deliveredAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

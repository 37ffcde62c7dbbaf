package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
)

type CreditRepositoryInterface interface {
	GetOrCreateWallet(ctx context.Context, userID string, currency string) (*db_models.CreditWallet, error)
	GetWalletByID(ctx context.Context, id uuid.UUID) (*db_models.CreditWallet, error)

	CreateTransaction(ctx context.Context, txn *db_models.CreditTransaction) error
	GetTransactionByPaymentTokenID(ctx context.Context, paymentTokenID uuid.UUID) (*db_models.CreditTransaction, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]db_models.CreditTransaction, error)
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status db_models.CreditTransactionStatus) error

	// SettlePurchase flips a purchase transaction to SUCCESSFUL and credits
	// the wallet in one database transaction. The status flip carries a
	// "not already SUCCESSFUL" guard and the wallet write is a single
	// balance = balance + ? increment, so duplicate callbacks credit the
	// wallet at most once. Returns false when the transaction was already
	// settled.
	SettlePurchase(ctx context.Context, txnID uuid.UUID, walletID uuid.UUID, credits int64) (bool, error)

	// SpendFromWallet debits the wallet and records the SPEND entry in one
	// database transaction. The decrement is conditional on a sufficient
	// balance; returns false when the wallet cannot cover the amount.
	SpendFromWallet(ctx context.Context, walletID uuid.UUID, txn *db_models.CreditTransaction) (bool, error)
}

func NewCreditRepository(db *gorm.DB) CreditRepositoryInterface {
	return &CreditRepository{db: db}
}

type CreditRepository struct {
	db *gorm.DB
}

func (r *CreditRepository) GetOrCreateWallet(ctx context.Context, userID string, currency string) (*db_models.CreditWallet, error) {
	var wallet db_models.CreditWallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = db_models.CreditWallet{UserID: userID, Balance: 0, Currency: currency}
	if err := r.db.WithContext(ctx).Create(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *CreditRepository) GetWalletByID(ctx context.Context, id uuid.UUID) (*db_models.CreditWallet, error) {
	var wallet db_models.CreditWallet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *CreditRepository) CreateTransaction(ctx context.Context, txn *db_models.CreditTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *CreditRepository) GetTransactionByPaymentTokenID(ctx context.Context, paymentTokenID uuid.UUID) (*db_models.CreditTransaction, error) {
	var txn db_models.CreditTransaction
	err := r.db.WithContext(ctx).Where("payment_token_id = ?", paymentTokenID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *CreditRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]db_models.CreditTransaction, error) {
	var txns []db_models.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *CreditRepository) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status db_models.CreditTransactionStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.CreditTransaction{}).
		Where("id = ? AND status <> ?", id, db_models.CreditTxnStatusSuccessful).
		Update("status", status).Error
}

func (r *CreditRepository) SettlePurchase(ctx context.Context, txnID uuid.UUID, walletID uuid.UUID, credits int64) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.CreditTransaction{}).
			Where("id = ? AND status <> ?", txnID, db_models.CreditTxnStatusSuccessful).
			Update("status", db_models.CreditTxnStatusSuccessful)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		applied = true
		return tx.Model(&db_models.CreditWallet{}).
			Where("id = ?", walletID).
			Update("balance", gorm.Expr("balance + ?", credits)).Error
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *CreditRepository) SpendFromWallet(ctx context.Context, walletID uuid.UUID, txn *db_models.CreditTransaction) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.CreditWallet{}).
			Where("id = ? AND balance >= ?", walletID, txn.Credits).
			Update("balance", gorm.Expr("balance - ?", txn.Credits))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		applied = true
		return tx.Create(txn).Error
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

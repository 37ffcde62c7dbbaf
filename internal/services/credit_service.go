package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/response_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type CreditConfig struct {
	CentsPerCredit int64
	Currency       string
}

type CreditServiceInterface interface {
	CreatePurchase(ctx context.Context, userID string, credits int64) (*response_models.CreditPurchaseResponse, error)
	GetWallet(ctx context.Context, userID string) (*response_models.WalletSummaryResponse, error)
	SpendCredits(ctx context.Context, userID string, credits int64, description string) (*response_models.WalletResponse, error)

	FulfillmentHandler
}

type CreditService struct {
	credits repositories.CreditRepositoryInterface
	tokens  repositories.PaymentTokenRepositoryInterface
	payment PaymentService
	cfg     CreditConfig
}

func NewCreditService(
	credits repositories.CreditRepositoryInterface,
	tokens repositories.PaymentTokenRepositoryInterface,
	payment PaymentService,
	cfg CreditConfig,
) CreditServiceInterface {
	if cfg.CentsPerCredit <= 0 {
		cfg.CentsPerCredit = 50
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	return &CreditService{
		credits: credits,
		tokens:  tokens,
		payment: payment,
		cfg:     cfg,
	}
}

func (s *CreditService) CreatePurchase(ctx context.Context, userID string, credits int64) (*response_models.CreditPurchaseResponse, error) {
	if credits <= 0 {
		return nil, utils.ErrInvalidCredits
	}

	wallet, err := s.credits.GetOrCreateWallet(ctx, userID, s.cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	amountCents := credits * s.cfg.CentsPerCredit
	token, checkoutToken, err := s.payment.CreateCheckoutToken(
		ctx,
		userID,
		amountCents,
		s.cfg.Currency,
		fmt.Sprintf("%d credits", credits),
		db_models.ItemTypeOrder,
		wallet.ID.String(),
	)
	if err != nil {
		return nil, err
	}

	txn := &db_models.CreditTransaction{
		WalletID:       wallet.ID,
		UserID:         userID,
		PaymentTokenID: &token.ID,
		Type:           db_models.CreditTxnTypePurchase,
		Status:         db_models.CreditTxnStatusPending,
		Credits:        credits,
		AmountCents:    amountCents,
		Currency:       s.cfg.Currency,
		Description:    fmt.Sprintf("Purchase of %d credits", credits),
	}
	if err := s.credits.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("%w: create credit transaction: %v", utils.ErrDatabaseError, err)
	}

	logger.S().Infow("credit purchase created",
		"credit_transaction_id", txn.ID,
		"user_id", userID,
		"credits", credits,
	)

	return &response_models.CreditPurchaseResponse{
		TransactionID: txn.ID.String(),
		PaymentToken:  token.Token,
		CheckoutToken: checkoutToken,
		Status:        string(txn.Status),
		Credits:       credits,
		AmountCents:   amountCents,
		Currency:      s.cfg.Currency,
	}, nil
}

// FulfillPaymentToken settles the credit purchase tied to the payment token.
// The wallet is credited exactly once: the settle path is conditional on the
// transaction not already being SUCCESSFUL, and the increment itself is a
// single balance = balance + ? update.
func (s *CreditService) FulfillPaymentToken(ctx context.Context, paymentTokenID uuid.UUID) error {
	txn, err := s.credits.GetTransactionByPaymentTokenID(ctx, paymentTokenID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if txn == nil {
		return nil
	}
	if txn.Status == db_models.CreditTxnStatusSuccessful {
		return nil
	}

	token, err := s.tokens.GetByID(ctx, paymentTokenID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if token == nil {
		return nil
	}

	switch {
	case token.Status == db_models.PaymentStatusSuccessful:
		applied, err := s.credits.SettlePurchase(ctx, txn.ID, txn.WalletID, txn.Credits)
		if err != nil {
			return fmt.Errorf("%w: settle credit purchase: %v", utils.ErrDatabaseError, err)
		}
		if applied {
			logger.S().Infow("wallet credited",
				"credit_transaction_id", txn.ID,
				"wallet_id", txn.WalletID,
				"credits", txn.Credits,
			)
		}
	case token.Status.IsFailure():
		if txn.Status != db_models.CreditTxnStatusFailed {
			if err := s.credits.UpdateTransactionStatus(ctx, txn.ID, db_models.CreditTxnStatusFailed); err != nil {
				return fmt.Errorf("%w: update credit transaction: %v", utils.ErrDatabaseError, err)
			}
		}
	default:
		if txn.Status != db_models.CreditTxnStatusPending {
			if err := s.credits.UpdateTransactionStatus(ctx, txn.ID, db_models.CreditTxnStatusPending); err != nil {
				return fmt.Errorf("%w: update credit transaction: %v", utils.ErrDatabaseError, err)
			}
		}
	}
	return nil
}

func (s *CreditService) SpendCredits(ctx context.Context, userID string, credits int64, description string) (*response_models.WalletResponse, error) {
	if credits <= 0 {
		return nil, utils.ErrInvalidCredits
	}

	wallet, err := s.credits.GetOrCreateWallet(ctx, userID, s.cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	txn := &db_models.CreditTransaction{
		WalletID:    wallet.ID,
		UserID:      userID,
		Type:        db_models.CreditTxnTypeSpend,
		Status:      db_models.CreditTxnStatusSuccessful,
		Credits:     credits,
		Currency:    wallet.Currency,
		Description: description,
	}

	applied, err := s.credits.SpendFromWallet(ctx, wallet.ID, txn)
	if err != nil {
		return nil, fmt.Errorf("%w: spend credits: %v", utils.ErrDatabaseError, err)
	}
	if !applied {
		return nil, utils.ErrInsufficientCredits
	}

	logger.S().Infow("credits spent",
		"wallet_id", wallet.ID,
		"user_id", userID,
		"credits", credits,
	)

	return s.walletSummary(ctx, userID)
}

// GetWallet returns the authoritative balance plus summary totals folded
// from the transaction history on read.
func (s *CreditService) GetWallet(ctx context.Context, userID string) (*response_models.WalletSummaryResponse, error) {
	wallet, err := s.credits.GetOrCreateWallet(ctx, userID, s.cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	txns, err := s.credits.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	summary := response_models.WalletResponse{
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	}
	out := make([]response_models.CreditTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		switch {
		case txn.Type == db_models.CreditTxnTypePurchase && txn.Status == db_models.CreditTxnStatusSuccessful:
			summary.TotalPurchased += txn.Credits
		case txn.Type == db_models.CreditTxnTypeSpend && txn.Status == db_models.CreditTxnStatusSuccessful:
			summary.TotalSpent += txn.Credits
		case txn.Type == db_models.CreditTxnTypePurchase &&
			(txn.Status == db_models.CreditTxnStatusPending || txn.Status == db_models.CreditTxnStatusCreated):
			summary.PendingCredits += txn.Credits
		}

		out = append(out, response_models.CreditTransactionResponse{
			TransactionID: txn.ID.String(),
			Type:          string(txn.Type),
			Status:        string(txn.Status),
			Credits:       txn.Credits,
			AmountCents:   txn.AmountCents,
			Currency:      txn.Currency,
			Description:   txn.Description,
			CreatedAt:     txn.CreatedAt,
		})
	}

	return &response_models.WalletSummaryResponse{
		Wallet:       summary,
		Transactions: out,
		Total:        len(out),
	}, nil
}

func (s *CreditService) walletSummary(ctx context.Context, userID string) (*response_models.WalletResponse, error) {
	full, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &full.Wallet, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/response_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type GiftServiceInterface interface {
	ListGifts(ctx context.Context) ([]response_models.GiftResponse, error)
	CreatePurchase(ctx context.Context, senderID string, giftID string) (*response_models.GiftPurchaseResponse, error)
	SendGift(ctx context.Context, session Session, senderID string, transactionID string, recipientID string) (*response_models.GiftSendResponse, error)
	ListTransactions(ctx context.Context, senderID string) ([]response_models.GiftTransactionResponse, error)

	FulfillmentHandler
}

type GiftService struct {
	gifts   repositories.GiftRepositoryInterface
	tokens  repositories.PaymentTokenRepositoryInterface
	payment PaymentService
	social  SocialClientInterface
}

func NewGiftService(
	gifts repositories.GiftRepositoryInterface,
	tokens repositories.PaymentTokenRepositoryInterface,
	payment PaymentService,
	social SocialClientInterface,
) GiftServiceInterface {
	return &GiftService{
		gifts:   gifts,
		tokens:  tokens,
		payment: payment,
		social:  social,
	}
}

func (g *GiftService) ListGifts(ctx context.Context) ([]response_models.GiftResponse, error) {
	gifts, err := g.gifts.ListActiveGifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.GiftResponse, 0, len(gifts))
	for _, gift := range gifts {
		resp := response_models.GiftResponse{
			ID:          gift.ID.String(),
			Name:        gift.Name,
			ImageURL:    gift.ImageURL,
			AmountCents: gift.AmountCents,
			Currency:    gift.Currency,
		}
		if gift.Description != nil {
			resp.Description = *gift.Description
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreatePurchase opens a checkout for an active catalog gift and records the
// transaction as PAYMENT_PENDING. The recipient is bound later, at send time.
func (g *GiftService) CreatePurchase(ctx context.Context, senderID string, giftID string) (*response_models.GiftPurchaseResponse, error) {
	id, err := uuid.Parse(giftID)
	if err != nil {
		return nil, utils.ErrGiftNotFound
	}

	gift, err := g.gifts.GetActiveGift(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if gift == nil {
		return nil, utils.ErrGiftNotFound
	}

	token, checkoutToken, err := g.payment.CreateCheckoutToken(
		ctx,
		senderID,
		gift.AmountCents,
		gift.Currency,
		fmt.Sprintf("Gift: %s", gift.Name),
		db_models.ItemTypeOneTime,
		gift.ID.String(),
	)
	if err != nil {
		return nil, err
	}

	txn := &db_models.GiftTransaction{
		GiftID:         gift.ID,
		PaymentTokenID: token.ID,
		SenderID:       senderID,
		AmountCents:    gift.AmountCents,
		Currency:       gift.Currency,
		Status:         db_models.GiftTxnStatusPaymentPending,
	}
	if err := g.gifts.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("%w: create gift transaction: %v", utils.ErrDatabaseError, err)
	}

	logger.S().Infow("gift purchase created",
		"gift_transaction_id", txn.ID,
		"gift_id", gift.ID,
		"sender_id", senderID,
	)

	return &response_models.GiftPurchaseResponse{
		TransactionID: txn.ID.String(),
		PaymentToken:  token.Token,
		CheckoutToken: checkoutToken,
		Status:        string(txn.Status),
	}, nil
}

// FulfillPaymentToken maps the payment token's status onto the gift
// transaction. No-ops when the payment was not for a gift, and never touches
// a DELIVERED transaction again.
func (g *GiftService) FulfillPaymentToken(ctx context.Context, paymentTokenID uuid.UUID) error {
	txn, err := g.gifts.GetTransactionByPaymentTokenID(ctx, paymentTokenID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if txn == nil {
		return nil
	}
	if txn.Status == db_models.GiftTxnStatusDelivered {
		return nil
	}

	token, err := g.tokens.GetByID(ctx, paymentTokenID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if token == nil {
		return nil
	}

	var next db_models.GiftTransactionStatus
	var deliveredAt *int64
	switch {
	case token.Status == db_models.PaymentStatusSuccessful:
		if txn.RecipientID != nil {
			next = db_models.GiftTxnStatusDelivered
			now := time.Now().Unix()
			deliveredAt = &now
		} else {
			next = db_models.GiftTxnStatusAvailable
		}
	case token.Status.IsFailure():
		next = db_models.GiftTxnStatusPaymentFailed
	default:
		next = db_models.GiftTxnStatusPaymentPending
	}

	if next == txn.Status {
		return nil
	}

	if err := g.gifts.UpdateTransactionStatus(ctx, txn.ID, next, deliveredAt); err != nil {
		return fmt.Errorf("%w: update gift transaction: %v", utils.ErrDatabaseError, err)
	}

	logger.S().Infow("gift transaction fulfilled",
		"gift_transaction_id", txn.ID,
		"payment_token_id", paymentTokenID,
		"status", next,
	)
	return nil
}

// SendGift binds a recipient to a paid gift. The recipient must be in the
// sender's match list at this moment, fetched live from the upstream API, so
// an unmatched or blocked recipient can never receive a gift.
func (g *GiftService) SendGift(ctx context.Context, session Session, senderID string, transactionID string, recipientID string) (*response_models.GiftSendResponse, error) {
	id, err := uuid.Parse(transactionID)
	if err != nil {
		return nil, utils.ErrTransactionNotFound
	}

	txn, err := g.gifts.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}
	if txn.SenderID != senderID {
		return nil, utils.ErrNotOwner
	}
	if txn.Status != db_models.GiftTxnStatusAvailable {
		return nil, utils.ErrGiftNotAvailable
	}

	matches, err := g.social.GetMatches(ctx, session)
	if err != nil {
		return nil, err
	}

	var matchID string
	for _, m := range matches {
		if m.MemberID == recipientID {
			matchID = m.MatchID
			break
		}
	}
	if matchID == "" {
		return nil, utils.ErrNotAMatch
	}

	delivered, err := g.gifts.MarkDelivered(ctx, txn.ID, recipientID, matchID, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("%w: deliver gift: %v", utils.ErrDatabaseError, err)
	}
	if !delivered {
		// Lost the race against a concurrent send of the same transaction.
		return nil, utils.ErrGiftNotAvailable
	}

	logger.S().Infow("gift delivered",
		"gift_transaction_id", txn.ID,
		"sender_id", senderID,
		"recipient_id", recipientID,
		"match_id", matchID,
	)

	return &response_models.GiftSendResponse{
		TransactionID: txn.ID.String(),
		Status:        string(db_models.GiftTxnStatusDelivered),
	}, nil
}

func (g *GiftService) ListTransactions(ctx context.Context, senderID string) ([]response_models.GiftTransactionResponse, error) {
	txns, err := g.gifts.ListTransactionsBySender(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.GiftTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, response_models.GiftTransactionResponse{
			TransactionID: txn.ID.String(),
			GiftID:        txn.GiftID.String(),
			GiftName:      txn.Gift.Name,
			RecipientID:   txn.RecipientID,
			AmountCents:   txn.AmountCents,
			Currency:      txn.Currency,
			Status:        string(txn.Status),
			DeliveredAt:   txn.DeliveredAt,
			CreatedAt:     txn.CreatedAt,
		})
	}
	return out, nil
}

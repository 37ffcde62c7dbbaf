package services

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

// FulfillmentHandler converts a settled payment into its product effect.
// Handlers must no-op when the payment token is not theirs and must be safe
// to invoke any number of times for the same token.
type FulfillmentHandler interface {
	FulfillPaymentToken(ctx context.Context, paymentTokenID uuid.UUID) error
}

type PaymentConfig struct {
	// PEM public key used to verify webhook signatures. Empty disables
	// verification; that escape hatch exists for test/dev environments only.
	PublicKeyPEM string
	TestMode     bool
}

type PaymentService interface {
	CreateCheckoutToken(ctx context.Context, userID string, amountCents int64, currency string, description string, itemType db_models.PaymentItemType, referenceID string) (*db_models.PaymentToken, string, error)
	HandleReturn(ctx context.Context, token string, rawStatus string, uid string) (*db_models.PaymentToken, error)
	ProcessWebhook(ctx context.Context, rawBody []byte, signature string) error
	RegisterFulfillmentHandler(h FulfillmentHandler)
}

type paymentService struct {
	tokens   repositories.PaymentTokenRepositoryInterface
	gateway  GatewayClient
	pubKey   *rsa.PublicKey // nil when verification is disabled
	testMode bool
	handlers []FulfillmentHandler
}

func NewPaymentService(tokens repositories.PaymentTokenRepositoryInterface, gateway GatewayClient, cfg PaymentConfig) (PaymentService, error) {
	var pubKey *rsa.PublicKey
	if cfg.PublicKeyPEM != "" {
		parsed, err := utils.ParseRSAPublicKey(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("payment webhook public key: %w", err)
		}
		pubKey = parsed
	} else {
		logger.S().Warn("webhook signature verification disabled: no public key configured")
	}

	return &paymentService{
		tokens:   tokens,
		gateway:  gateway,
		pubKey:   pubKey,
		testMode: cfg.TestMode,
	}, nil
}

// RegisterFulfillmentHandler is called once per handler at startup, before
// the HTTP server accepts traffic.
func (p *paymentService) RegisterFulfillmentHandler(h FulfillmentHandler) {
	p.handlers = append(p.handlers, h)
}

func (p *paymentService) CreateCheckoutToken(ctx context.Context, userID string, amountCents int64, currency string, description string, itemType db_models.PaymentItemType, referenceID string) (*db_models.PaymentToken, string, error) {
	opaque, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, "", err
	}

	token := &db_models.PaymentToken{
		Token:       opaque,
		UserID:      userID,
		ItemType:    itemType,
		AmountCents: amountCents,
		Currency:    currency,
		Description: description,
		Status:      db_models.PaymentStatusCreated,
		TestMode:    p.testMode,
	}
	if err := p.tokens.Create(ctx, token); err != nil {
		return nil, "", fmt.Errorf("%w: create payment token: %v", utils.ErrDatabaseError, err)
	}

	resp, err := p.gateway.CreateToken(ctx, CheckoutRequest{
		PaymentTokenID: token.ID,
		Token:          token.Token,
		AmountCents:    amountCents,
		Currency:       currency,
		Description:    description,
		ItemType:       itemType,
		ReferenceID:    referenceID,
	})
	if err != nil {
		// Record the failure before re-raising so the token cannot sit in
		// CREATED with no way to reconcile later.
		if markErr := p.tokens.MarkFailed(ctx, token.ID); markErr != nil {
			logger.S().Errorw("failed to mark payment token failed",
				"payment_token_id", token.ID, "error", markErr)
		}
		token.Status = db_models.PaymentStatusFailed
		return nil, "", err
	}

	if err := p.tokens.MarkCheckoutCreated(ctx, token.ID, resp.CheckoutToken); err != nil {
		return nil, "", fmt.Errorf("%w: update payment token: %v", utils.ErrDatabaseError, err)
	}
	token.Status = db_models.PaymentStatusPending
	token.GatewayUID = &resp.CheckoutToken

	logger.S().Infow("checkout created",
		"payment_token_id", token.ID,
		"user_id", userID,
		"amount_cents", amountCents,
		"currency", currency,
		"item_type", itemType,
	)
	return token, resp.CheckoutToken, nil
}

// HandleReturn reconciles the browser redirect coming back from the hosted
// payment page. It races with the webhook for the same token; both paths
// apply the same guarded update and fulfillment.
func (p *paymentService) HandleReturn(ctx context.Context, token string, rawStatus string, uid string) (*db_models.PaymentToken, error) {
	pt, err := p.tokens.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if pt == nil {
		return nil, utils.ErrPaymentTokenNotFound
	}

	status := MapGatewayStatus(rawStatus)
	if err := p.applyGatewayUpdate(ctx, pt, status, uid, nil); err != nil {
		return nil, err
	}

	updated, err := p.tokens.GetByID(ctx, pt.ID)
	if err != nil || updated == nil {
		return pt, nil
	}
	return updated, nil
}

type webhookPayload struct {
	Status         string `json:"status"`
	UID            string `json:"uid"`
	PaymentTokenID string `json:"payment_token_id"`
	Metadata       struct {
		PaymentTokenID string `json:"payment_token_id"`
	} `json:"metadata"`
}

// ProcessWebhook reconciles the server-to-server callback. The raw body is
// stored on the token for traceability.
func (p *paymentService) ProcessWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if p.pubKey != nil {
		if signature == "" {
			return utils.ErrInvalidSignature
		}
		if err := utils.VerifyContentSignature(p.pubKey, rawBody, signature); err != nil {
			logger.S().Warnw("webhook signature rejected", "error", err)
			return utils.ErrInvalidSignature
		}
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return fmt.Errorf("%w: webhook body is not valid JSON", utils.ErrInvalidPayload)
	}

	pt, err := p.resolveToken(ctx, payload)
	if err != nil {
		return err
	}

	status := MapGatewayStatus(payload.Status)
	return p.applyGatewayUpdate(ctx, pt, status, payload.UID, rawBody)
}

func (p *paymentService) resolveToken(ctx context.Context, payload webhookPayload) (*db_models.PaymentToken, error) {
	id := payload.PaymentTokenID
	if id == "" {
		id = payload.Metadata.PaymentTokenID
	}

	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed payment_token_id", utils.ErrInvalidPayload)
		}
		pt, err := p.tokens.GetByID(ctx, parsed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if pt != nil {
			return pt, nil
		}
	}

	if payload.UID != "" {
		pt, err := p.tokens.GetByGatewayUID(ctx, payload.UID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if pt != nil {
			return pt, nil
		}
	}

	return nil, utils.ErrPaymentTokenNotFound
}

// applyGatewayUpdate writes the mapped status onto the token and dispatches
// fulfillment. A SUCCESSFUL token is never downgraded: the in-memory check
// short-circuits the common case and the repository repeats the guard in the
// WHERE clause for callbacks racing each other.
func (p *paymentService) applyGatewayUpdate(ctx context.Context, pt *db_models.PaymentToken, status db_models.PaymentStatus, uid string, rawPayload []byte) error {
	if pt.Status == db_models.PaymentStatusSuccessful && status != db_models.PaymentStatusSuccessful {
		logger.S().Infow("ignoring stale callback for settled payment token",
			"payment_token_id", pt.ID,
			"stale_status", status,
		)
	} else {
		var uidPtr *string
		if uid != "" {
			uidPtr = &uid
		}
		if err := p.tokens.ApplyGatewayUpdate(ctx, pt.ID, status, uidPtr, rawPayload); err != nil {
			return fmt.Errorf("%w: update payment token: %v", utils.ErrDatabaseError, err)
		}
		logger.S().Infow("payment token updated",
			"payment_token_id", pt.ID,
			"status", status,
		)
	}

	return p.fulfill(ctx, pt.ID)
}

// fulfill invokes every registered handler. Each handler no-ops when the
// token does not belong to it, so dispatch is unconditional.
func (p *paymentService) fulfill(ctx context.Context, paymentTokenID uuid.UUID) error {
	var errs error
	for _, h := range p.handlers {
		if err := h.FulfillPaymentToken(ctx, paymentTokenID); err != nil {
			logger.S().Errorw("fulfillment handler failed",
				"payment_token_id", paymentTokenID,
				"error", err,
			)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

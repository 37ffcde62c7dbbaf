package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type GatewayConfig struct {
	BaseURL    string // secure-processor API base, e.g. https://checkout.example.com
	ShopID     string
	ShopSecret string
	ReturnURL  string // our /api/payments/secure-processor/return endpoint
	TestMode   bool
	Timeout    time.Duration
}

type CheckoutRequest struct {
	PaymentTokenID uuid.UUID
	Token          string // internal opaque token, echoed on the return URL
	AmountCents    int64
	Currency       string
	Description    string
	ItemType       db_models.PaymentItemType
	ReferenceID    string
}

type CheckoutResponse struct {
	CheckoutToken string
	Status        string
}

// GatewayClient issues hosted-checkout tokens with the external processor.
type GatewayClient interface {
	CreateToken(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
}

type SecureProcessorClient struct {
	http *http.Client
	cfg  GatewayConfig
}

func NewSecureProcessorClient(cfg GatewayConfig) *SecureProcessorClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SecureProcessorClient{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

func (c *SecureProcessorClient) CreateToken(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	payload := map[string]interface{}{
		"checkout": map[string]interface{}{
			"test":             c.cfg.TestMode,
			"transaction_type": "payment",
			"order": map[string]interface{}{
				"amount":      req.AmountCents,
				"currency":    req.Currency,
				"description": req.Description,
			},
			"settings": map[string]interface{}{
				"return_url": fmt.Sprintf("%s?token=%s", c.cfg.ReturnURL, req.Token),
			},
			"metadata": map[string]interface{}{
				"payment_token_id": req.PaymentTokenID.String(),
				"item_type":        string(req.ItemType),
				"reference_id":     req.ReferenceID,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/ctp/api/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.cfg.ShopID, c.cfg.ShopSecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", utils.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.S().Warnw("secure processor rejected checkout",
			"status_code", resp.StatusCode,
			"payment_token_id", req.PaymentTokenID,
		)
		return nil, fmt.Errorf("%w: secure processor returned %d: %s", utils.ErrUpstreamFailure, resp.StatusCode, string(respBody))
	}

	// The gateway wraps its responses; do not trust-cast beyond the two
	// fields this client needs.
	var out struct {
		Checkout struct {
			Token  string `json:"token"`
			Status string `json:"status"`
		} `json:"checkout"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", utils.ErrUpstreamFailure, err)
	}
	if out.Checkout.Token == "" {
		return nil, fmt.Errorf("%w: secure processor response has no checkout token", utils.ErrUpstreamFailure)
	}

	return &CheckoutResponse{
		CheckoutToken: out.Checkout.Token,
		Status:        out.Checkout.Status,
	}, nil
}

// MapGatewayStatus normalizes the processor's status vocabulary to the
// canonical payment status. Unknown values stay PENDING so a vocabulary
// change upstream never terminalizes a token by accident.
func MapGatewayStatus(raw string) db_models.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "successful", "success", "completed":
		return db_models.PaymentStatusSuccessful
	case "failed", "failure":
		return db_models.PaymentStatusFailed
	case "declined", "rejected":
		return db_models.PaymentStatusDeclined
	case "expired":
		return db_models.PaymentStatusExpired
	case "error":
		return db_models.PaymentStatusError
	default:
		return db_models.PaymentStatusPending
	}
}

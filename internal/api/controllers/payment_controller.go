package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/response_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// HandleWebhook godoc
// @Summary Secure-processor webhook
// @Description Server-to-server payment callback, signed with content-signature
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response_models.WebhookAckResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/payments/secure-processor/webhook [post]
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("content-signature")

	// The gateway treats anything but a 2xx as retryable and keeps
	// redelivering; every failure here is a 400 by contract.
	if err := p.paymentService.ProcessWebhook(c.Request.Context(), rawBody, signature); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, response_models.WebhookAckResponse{OK: true})
}

// HandleReturn godoc
// @Summary Secure-processor return redirect
// @Description Browser redirect target after the hosted payment page
// @Tags Payments
// @Produce json
// @Param token query string true "Internal payment token"
// @Param status query string false "Gateway status"
// @Param uid query string false "Gateway checkout uid"
// @Success 200 {object} response_models.PaymentReturnResponse
// @Router /api/payments/secure-processor/return [get]
func (p *PaymentController) HandleReturn(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "token query parameter is required")
		return
	}

	updated, err := p.paymentService.HandleReturn(c.Request.Context(), token, c.Query("status"), c.Query("uid"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response_models.PaymentReturnResponse{
		Status: string(updated.Status),
		Token:  updated.Token,
	})
}

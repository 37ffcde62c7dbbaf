package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/request_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type GiftController struct {
	giftService services.GiftServiceInterface
}

func NewGiftController(giftService services.GiftServiceInterface) *GiftController {
	return &GiftController{
		giftService: giftService,
	}
}

func sessionFromContext(c *gin.Context) services.Session {
	return services.Session{
		SessionID: c.GetString("session_id"),
		UserID:    c.GetString("user_id"),
	}
}

// ListGifts godoc
// @Summary List the active gift catalog
// @Tags Gifts
// @Produce json
// @Success 200 {array} response_models.GiftResponse
// @Router /api/gifts [get]
func (g *GiftController) ListGifts(c *gin.Context) {
	gifts, err := g.giftService.ListGifts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gifts)
}

// Purchase godoc
// @Summary Purchase a gift
// @Description Opens a hosted checkout for a catalog gift
// @Tags Gifts
// @Accept json
// @Produce json
// @Param request body request_models.PurchaseGiftRequest true "Gift purchase payload"
// @Success 200 {object} response_models.GiftPurchaseResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/gifts/purchase [post]
func (g *GiftController) Purchase(c *gin.Context) {
	var req request_models.PurchaseGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := g.giftService.CreatePurchase(c.Request.Context(), c.GetString("user_id"), req.GiftID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Send godoc
// @Summary Send a paid gift to a match
// @Tags Gifts
// @Accept json
// @Produce json
// @Param request body request_models.SendGiftRequest true "Gift send payload"
// @Success 200 {object} response_models.GiftSendResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/gifts/send [post]
func (g *GiftController) Send(c *gin.Context) {
	var req request_models.SendGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := g.giftService.SendGift(
		c.Request.Context(),
		sessionFromContext(c),
		c.GetString("user_id"),
		req.TransactionID,
		req.RecipientID,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTransactions godoc
// @Summary List the caller's gift purchases
// @Tags Gifts
// @Produce json
// @Success 200 {array} response_models.GiftTransactionResponse
// @Router /api/gifts/transactions [get]
func (g *GiftController) ListTransactions(c *gin.Context) {
	txns, err := g.giftService.ListTransactions(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

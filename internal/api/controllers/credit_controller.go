package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/request_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type CreditController struct {
	creditService services.CreditServiceInterface
}

func NewCreditController(creditService services.CreditServiceInterface) *CreditController {
	return &CreditController{
		creditService: creditService,
	}
}

// Purchase godoc
// @Summary Purchase credits
// @Description Opens a hosted checkout for a credit pack
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body request_models.PurchaseCreditsRequest true "Credit purchase payload"
// @Success 200 {object} response_models.CreditPurchaseResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/credits/purchase [post]
func (ctl *CreditController) Purchase(c *gin.Context) {
	var req request_models.PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := ctl.creditService.CreatePurchase(c.Request.Context(), c.GetString("user_id"), req.Credits)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Wallet godoc
// @Summary Get the caller's wallet and transaction history
// @Tags Credits
// @Produce json
// @Success 200 {object} response_models.WalletSummaryResponse
// @Router /api/credits/wallet [get]
func (ctl *CreditController) Wallet(c *gin.Context) {
	resp, err := ctl.creditService.GetWallet(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Spend godoc
// @Summary Spend credits from the caller's wallet
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body request_models.SpendCreditsRequest true "Spend payload"
// @Success 200 {object} response_models.WalletResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/credits/spend [post]
func (ctl *CreditController) Spend(c *gin.Context) {
	var req request_models.SpendCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := ctl.creditService.SpendCredits(c.Request.Context(), c.GetString("user_id"), req.Credits, req.Description)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

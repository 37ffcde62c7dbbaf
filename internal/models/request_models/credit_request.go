package request_models

type PurchaseCreditsRequest struct {
	Credits int64 `json:"credits" binding:"required"`
}

type SpendCreditsRequest struct {
	Credits     int64  `json:"credits" binding:"required"`
	Description string `json:"description"`
}

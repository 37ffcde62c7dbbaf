package request_models

type PurchaseGiftRequest struct {
	GiftID string `json:"giftId" binding:"required"`
}

type SendGiftRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	RecipientID   string `json:"recipientId" binding:"required"`
}

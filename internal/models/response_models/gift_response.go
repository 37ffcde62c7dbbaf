package response_models

type GiftResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
}

type GiftPurchaseResponse struct {
	TransactionID string `json:"transactionId"`
	PaymentToken  string `json:"paymentToken"`
	CheckoutToken string `json:"checkoutToken"`
	Status        string `json:"status"`
}

type GiftSendResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

type GiftTransactionResponse struct {
	TransactionID string  `json:"transactionId"`
	GiftID        string  `json:"giftId"`
	GiftName      string  `json:"giftName,omitempty"`
	RecipientID   *string `json:"recipientId,omitempty"`
	AmountCents   int64   `json:"amountCents"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	DeliveredAt   *int64  `json:"deliveredAt,omitempty"`
	CreatedAt     int64   `json:"createdAt"`
}

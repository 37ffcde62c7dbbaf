package response_models

type CreditPurchaseResponse struct {
	TransactionID string `json:"transactionId"`
	PaymentToken  string `json:"paymentToken"`
	CheckoutToken string `json:"checkoutToken"`
	Status        string `json:"status"`
	Credits       int64  `json:"credits"`
	AmountCents   int64  `json:"amountCents"`
	Currency      string `json:"currency"`
}

type WalletResponse struct {
	Balance        int64  `json:"balance"`
	Currency       string `json:"currency"`
	TotalPurchased int64  `json:"totalPurchased"`
	TotalSpent     int64  `json:"totalSpent"`
	PendingCredits int64  `json:"pendingCredits"`
}

type CreditTransactionResponse struct {
	TransactionID string `json:"transactionId"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Credits       int64  `json:"credits"`
	AmountCents   int64  `json:"amountCents"`
	Currency      string `json:"currency"`
	Description   string `json:"description,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

type WalletSummaryResponse struct {
	Wallet       WalletResponse              `json:"wallet"`
	Transactions []CreditTransactionResponse `json:"transactions"`
	Total        int                         `json:"total"`
}

package response_models

type PaymentReturnResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type WebhookAckResponse struct {
	OK bool `json:"ok"`
}

package utils

import "errors"

var (
	ErrUnauthorized = errors.New("missing or invalid session")

	ErrGiftNotFound         = errors.New("gift not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrPaymentTokenNotFound = errors.New("payment token not found")

	ErrNotOwner         = errors.New("transaction does not belong to this user")
	ErrNotAMatch        = errors.New("recipient is not a match of the sender")
	ErrGiftNotAvailable = errors.New("gift is not available to send")

	ErrInvalidCredits      = errors.New("credits must be greater than zero")
	ErrInsufficientCredits = errors.New("insufficient credits")

	ErrInvalidPayload   = errors.New("invalid payload")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUpstreamFailure  = errors.New("upstream request failed")
	ErrDatabaseError    = errors.New("database error")
)

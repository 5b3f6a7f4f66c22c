package economy

import "errors"

// Define errors
var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidWallet     = errors.New("invalid wallet")
	ErrInvalidCollection = errors.New("invalid collection")
	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTarget        = errors.New("cannot target yourself")
	ErrItemNotHeld       = errors.New("sender does not hold this item")
	ErrItemAlreadyHeld   = errors.New("recipient already holds this item")
)

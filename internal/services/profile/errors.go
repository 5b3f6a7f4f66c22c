package profile

import "errors"

// Define errors
var (
	ErrRecordNotFound = errors.New("record not found")
)

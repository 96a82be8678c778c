package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNoDocument       = errors.New("no invoice pdf available")
	ErrMissingRecipient = errors.New("recipient email is required")
)

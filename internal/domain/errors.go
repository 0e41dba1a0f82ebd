package domain

import "errors"

// Error kinds surfaced to callers. Match them with errors.Is; the wrapped
// message carries the details.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientHolding = errors.New("insufficient holding")
	ErrInsufficientCash    = errors.New("insufficient cash")
	ErrInvalidParameters   = errors.New("invalid parameters")

	ErrNotFound        = errors.New("not found")
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrUnknownCurrency = errors.New("unknown currency")
)

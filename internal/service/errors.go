package service

import (
	"errors"

	"github.com/iliyamo/auction-house/internal/repository"
)

// Business rule violations returned by the auction engine.  Callers match
// them with errors.Is; the returned errors usually wrap one of these with
// the offending values.
var (
	ErrInvalidState        = errors.New("auction is not open for this operation")
	ErrSelfBid             = errors.New("sellers cannot bid on their own auction")
	ErrPriceTooLow         = errors.New("price must exceed the current price")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidInput        = errors.New("invalid input")
)

// Store errors re-exported so that the request layer depends on this
// package only.
var (
	ErrNotFound  = repository.ErrNotFound
	ErrForbidden = repository.ErrForbidden
	ErrConflict  = repository.ErrConflict
)

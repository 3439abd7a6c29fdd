package marketerrors

import "errors"

// Repository-level errors
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateBid       = errors.New("user already has a bid on this collection")
	ErrBidNotPending      = errors.New("bid is no longer pending")
)

// business logic errors
var (
	ErrInvalidBid        = errors.New("invalid bid")
	ErrInvalidCollection = errors.New("invalid collection")
)

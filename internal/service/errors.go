package service

import "errors"

var (
	ErrEmailTaken              = errors.New("email already registered")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidID               = errors.New("invalid id format")
	ErrListingNotFound         = errors.New("listing not found")
	ErrPackageNotFound         = errors.New("package not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadySettled      = errors.New("withdrawal already settled")
	ErrSellerMismatch      = errors.New("withdrawal belongs to another seller")
	ErrNotificationFailed  = errors.New("notification failed")
)

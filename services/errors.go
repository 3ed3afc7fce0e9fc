package services

import "errors"

var (
	// ErrEmptyCart is returned when placement is attempted with no cart entries.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTransition is returned when a status change is requested from an
	// incompatible current state, including a stale concurrent update.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrOrderNotFound    = errors.New("order not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

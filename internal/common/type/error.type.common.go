package types

import "errors"

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrPaymentMethodNotFound   = errors.New("payment method not found")
	ErrMenuItemNotFound        = errors.New("menu item not found")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

package enum

/*----------- OrderStatusEnum -----------*/

type OrderStatusEnum string

const (
	ORDER_PENDING    OrderStatusEnum = "pending"
	ORDER_PROCESSING OrderStatusEnum = "processing"
	ORDER_APPROVED   OrderStatusEnum = "approved"
	ORDER_REJECTED   OrderStatusEnum = "rejected"
)

func (e OrderStatusEnum) IsValid() bool {
	switch e {
	case ORDER_PENDING, ORDER_PROCESSING, ORDER_APPROVED, ORDER_REJECTED:
		return true
	}
	return false
}

// IsPending reports the states in which the shop has not decided yet.
func (e OrderStatusEnum) IsPending() bool {
	return e == ORDER_PENDING || e == ORDER_PROCESSING
}

// CanTransitionTo reports whether an admin may move an order from e to next.
func (e OrderStatusEnum) CanTransitionTo(next OrderStatusEnum) bool {
	switch e {
	case ORDER_PENDING:
		return next == ORDER_PROCESSING || next == ORDER_APPROVED || next == ORDER_REJECTED
	case ORDER_PROCESSING:
		return next == ORDER_APPROVED || next == ORDER_REJECTED
	}
	return false
}

/*----------- OrderModeEnum -----------*/

// OrderModeEnum selects how the storefront submits an order.
type OrderModeEnum string

const (
	ORDER_MODE_WHATSAPP OrderModeEnum = "whatsapp"
	ORDER_MODE_DIRECT   OrderModeEnum = "direct"
)

func (e OrderModeEnum) IsValid() bool {
	switch e {
	case ORDER_MODE_WHATSAPP, ORDER_MODE_DIRECT:
		return true
	}
	return false
}

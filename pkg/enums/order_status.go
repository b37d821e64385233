package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the intake lifecycle of an order.
type OrderStatus string

const (
	OrderStatusConfirmed              OrderStatus = "confirmed"
	OrderStatusProcessing             OrderStatus = "processing"
	OrderStatusWaitingForConfirmation OrderStatus = "waiting_for_confirmation"
	OrderStatusHold                   OrderStatus = "hold"
	OrderStatusOther                  OrderStatus = "other"
)

// OrderStatusUnknown is the fold-in key for empty or unrecognized statuses in
// the status distribution. It is never stored.
const OrderStatusUnknown OrderStatus = "unknown"

var validOrderStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusWaitingForConfirmation,
	OrderStatusHold,
	OrderStatusOther,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Normalize maps empty or unrecognized statuses onto OrderStatusUnknown so the
// status distribution always counts under a stable key.
func (s OrderStatus) Normalize() OrderStatus {
	trimmed := OrderStatus(strings.TrimSpace(string(s)))
	if trimmed.IsValid() {
		return trimmed
	}
	return OrderStatusUnknown
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

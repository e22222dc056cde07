package enum

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatusEnum
		allowed  bool
	}{
		{ORDER_PENDING, ORDER_PROCESSING, true},
		{ORDER_PENDING, ORDER_APPROVED, true},
		{ORDER_PENDING, ORDER_REJECTED, true},
		{ORDER_PROCESSING, ORDER_APPROVED, true},
		{ORDER_PROCESSING, ORDER_PENDING, false},
		{ORDER_APPROVED, ORDER_REJECTED, false},
		{ORDER_REJECTED, ORDER_APPROVED, false},
		{ORDER_PENDING, OrderStatusEnum("shipped"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderModeIsValid(t *testing.T) {
	if !ORDER_MODE_DIRECT.IsValid() || !ORDER_MODE_WHATSAPP.IsValid() {
		t.Fatal("expected known modes to be valid")
	}
	if OrderModeEnum("telegram").IsValid() {
		t.Fatal("expected unknown mode to be invalid")
	}
}

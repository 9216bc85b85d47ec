package delivery

import (
	"testing"

	domainErrors "github.com/freshdeli/console/internal/domain/errors"
)

func TestOrderStatusTransitions(t *testing.T) {
	order := &Order{ID: 1, Status: StatusPending}

	for _, next := range []Status{StatusConfirmed, StatusOutForDelivery, StatusDelivered} {
		if err := order.TransitionTo(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	if order.Status != StatusDelivered {
		t.Fatalf("expected delivered, got %s", order.Status)
	}
}

func TestOrderCancelOnlyBeforeDeparture(t *testing.T) {
	order := &Order{Status: StatusConfirmed}
	if err := order.TransitionTo(StatusCanceled); err != nil {
		t.Fatalf("cancel before departure should be allowed: %v", err)
	}

	order = &Order{Status: StatusOutForDelivery}
	if err := order.TransitionTo(StatusCanceled); err != domainErrors.ErrInvalidStatusChange {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
}

func TestOrderNoBackwardTransitions(t *testing.T) {
	order := &Order{Status: StatusDelivered}
	if err := order.TransitionTo(StatusPending); err != domainErrors.ErrInvalidStatusChange {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
}

func TestFeeForPicksHighestMatchingTier(t *testing.T) {
	settings := Settings{Tiers: []FeeTier{
		{MinSubtotal: 0, Fee: 500},
		{MinSubtotal: 3000, Fee: 300},
		{MinSubtotal: 5000, Fee: 0},
	}}

	cases := []struct {
		subtotal int64
		fee      int64
	}{
		{0, 500},
		{2999, 500},
		{3000, 300},
		{4999, 300},
		{5000, 0},
		{12000, 0},
	}
	for _, tc := range cases {
		if got := settings.FeeFor(tc.subtotal); got != tc.fee {
			t.Fatalf("FeeFor(%d) = %d, want %d", tc.subtotal, got, tc.fee)
		}
	}
}

func TestFeeForNoTiers(t *testing.T) {
	if got := (Settings{}).FeeFor(1000); got != 0 {
		t.Fatalf("FeeFor with no tiers = %d, want 0", got)
	}
}

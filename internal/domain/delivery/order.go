package delivery

import (
	"time"

	domainErrors "github.com/freshdeli/console/internal/domain/errors"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCanceled       Status = "canceled"
)

// transitions lists the allowed next states. Cancellation is only possible
// before the courier leaves.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCanceled},
	StatusConfirmed:      {StatusOutForDelivery, StatusCanceled},
	StatusOutForDelivery: {StatusDelivered},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusOutForDelivery, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	Address       string
	WindowID      int64
	Status        Status
	Subtotal      int64
	Fee           int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (o *Order) TransitionTo(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return domainErrors.ErrInvalidStatusChange
	}
	o.Status = next
	return nil
}

func (o *Order) Total() int64 {
	return o.Subtotal + o.Fee
}

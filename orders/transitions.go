package orders

import (
	"ukulima/apperr"
	"ukulima/models"
)

// Actor is the caller's role relative to the order, not their account role.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorFarmer   Actor = "farmer"
)

// statusRank orders the forward fulfillment chain. cancelled sits outside it.
var statusRank = map[string]int{
	models.OrderPending:   0,
	models.OrderConfirmed: 1,
	models.OrderPreparing: 2,
	models.OrderReady:     3,
	models.OrderInTransit: 4,
	models.OrderDelivered: 5,
}

// CheckTransition is the single transition guard: (actor, current) -> allowed
// next statuses. Customers may only mark delivered or cancel, and cancelling
// is possible only while the order is still pending. Farmers move the order
// forward along the chain; skipping stages is allowed, going back is not.
// delivered and cancelled are terminal for everyone.
func CheckTransition(actor Actor, current, next string) error {
	if _, known := statusRank[next]; !known && next != models.OrderCancelled {
		return apperr.ErrInvalidInput
	}
	if current == models.OrderDelivered || current == models.OrderCancelled {
		return apperr.ErrInvalidTransition
	}

	switch actor {
	case ActorCustomer:
		switch next {
		case models.OrderCancelled:
			if current != models.OrderPending {
				return apperr.ErrInvalidTransition
			}
			return nil
		case models.OrderDelivered:
			return nil
		default:
			return apperr.ErrForbidden
		}
	case ActorFarmer:
		if next == models.OrderCancelled {
			return apperr.ErrInvalidTransition
		}
		if statusRank[next] <= statusRank[current] {
			return apperr.ErrInvalidTransition
		}
		return nil
	}
	return apperr.ErrForbidden
}

// ActorFor resolves the caller's relationship to an order.
func ActorFor(order *models.Order, userID string) (Actor, error) {
	switch userID {
	case order.Customer:
		return ActorCustomer, nil
	case order.Farmer:
		return ActorFarmer, nil
	}
	return "", apperr.ErrForbidden
}

var validPaymentStatuses = map[string]bool{
	models.PaymentPending:  true,
	models.PaymentPaid:     true,
	models.PaymentFailed:   true,
	models.PaymentRefunded: true,
}

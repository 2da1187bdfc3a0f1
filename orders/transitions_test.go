package orders

import (
	"testing"

	"ukulima/apperr"
	"ukulima/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		current string
		next    string
		wantErr error
	}{
		{"customer cancels pending", ActorCustomer, models.OrderPending, models.OrderCancelled, nil},
		{"customer cancels confirmed", ActorCustomer, models.OrderConfirmed, models.OrderCancelled, apperr.ErrInvalidTransition},
		{"customer cancels in transit", ActorCustomer, models.OrderInTransit, models.OrderCancelled, apperr.ErrInvalidTransition},
		{"customer marks delivered", ActorCustomer, models.OrderInTransit, models.OrderDelivered, nil},
		{"customer sets preparing", ActorCustomer, models.OrderConfirmed, models.OrderPreparing, apperr.ErrForbidden},
		{"customer sets confirmed", ActorCustomer, models.OrderPending, models.OrderConfirmed, apperr.ErrForbidden},
		{"farmer confirms pending", ActorFarmer, models.OrderPending, models.OrderConfirmed, nil},
		{"farmer skips to ready", ActorFarmer, models.OrderPending, models.OrderReady, nil},
		{"farmer moves backwards", ActorFarmer, models.OrderReady, models.OrderConfirmed, apperr.ErrInvalidTransition},
		{"farmer repeats status", ActorFarmer, models.OrderPreparing, models.OrderPreparing, apperr.ErrInvalidTransition},
		{"farmer cancels", ActorFarmer, models.OrderPending, models.OrderCancelled, apperr.ErrInvalidTransition},
		{"farmer delivers", ActorFarmer, models.OrderInTransit, models.OrderDelivered, nil},
		{"delivered is terminal", ActorFarmer, models.OrderDelivered, models.OrderInTransit, apperr.ErrInvalidTransition},
		{"cancelled is terminal", ActorCustomer, models.OrderCancelled, models.OrderDelivered, apperr.ErrInvalidTransition},
		{"unknown target status", ActorFarmer, models.OrderPending, "shipped", apperr.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.actor, tt.current, tt.next)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestActorFor(t *testing.T) {
	order := &models.Order{Customer: "u1", Farmer: "u2"}

	actor, err := ActorFor(order, "u1")
	assert.NoError(t, err)
	assert.Equal(t, ActorCustomer, actor)

	actor, err = ActorFor(order, "u2")
	assert.NoError(t, err)
	assert.Equal(t, ActorFarmer, actor)

	_, err = ActorFor(order, "u3")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

package orders

import (
	"strings"
	"testing"
	"time"

	"ukulima/apperr"
	"ukulima/models"

	"github.com/stretchr/testify/assert"
)

func TestMakeLineItem(t *testing.T) {
	product := models.Product{
		ProductID: "p1",
		Name:      "Sukuma Wiki",
		Price:     40,
		Quantity:  5,
		MinOrder:  2,
	}

	t.Run("snapshots the current price", func(t *testing.T) {
		line, err := makeLineItem(product, 3)
		assert.NoError(t, err)
		assert.Equal(t, "p1", line.Product)
		assert.Equal(t, 3, line.Quantity)
		assert.Equal(t, 40.0, line.Price)
	})

	t.Run("rejects quantity over stock", func(t *testing.T) {
		_, err := makeLineItem(product, 6)
		assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	})

	t.Run("rejects quantity below minimum", func(t *testing.T) {
		_, err := makeLineItem(product, 1)
		assert.ErrorIs(t, err, apperr.ErrBelowMinimumOrder)
	})

	t.Run("exact stock is allowed", func(t *testing.T) {
		line, err := makeLineItem(product, 5)
		assert.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
	})
}

// Walks the stock=5, minOrder=2 scenario: 3 then 2 succeed, then nothing is
// left for a third order.
func TestLineItemStockScenario(t *testing.T) {
	product := models.Product{ProductID: "p1", Name: "Maize", Price: 100, Quantity: 5, MinOrder: 2}

	line, err := makeLineItem(product, 3)
	assert.NoError(t, err)
	product.Quantity -= line.Quantity
	assert.Equal(t, 2, product.Quantity)

	line, err = makeLineItem(product, 2)
	assert.NoError(t, err)
	product.Quantity -= line.Quantity
	assert.Equal(t, 0, product.Quantity)

	_, err = makeLineItem(product, 1)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
}

func TestOrderTotalMatchesSnapshots(t *testing.T) {
	products := []models.Product{
		{ProductID: "p1", Name: "Beans", Price: 120, Quantity: 10, MinOrder: 1},
		{ProductID: "p2", Name: "Milk", Price: 55, Quantity: 20, MinOrder: 2},
	}
	quantities := []int{4, 6}

	var total float64
	for i, p := range products {
		line, err := makeLineItem(p, quantities[i])
		assert.NoError(t, err)
		total += line.Price * float64(line.Quantity)
	}
	assert.Equal(t, 120*4.0+55*6.0, total)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Now()
	num := newOrderNumber(now)

	assert.True(t, strings.HasPrefix(num, "UK"))
	// "UK" + 13 millis digits + 6 random digits
	assert.Len(t, num, 21)
	for _, r := range num[2:] {
		assert.True(t, r >= '0' && r <= '9', "order number body should be digits")
	}
}

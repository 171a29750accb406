package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponse(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	o := &Order{
		ID:        4,
		UserID:    7,
		Total:     dec("25.5"),
		Status:    StatusShipped,
		CreatedAt: created,
		Items: []OrderItem{
			{ID: 1, ProductID: 1, ProductName: "P1", Quantity: 2, Price: dec("10")},
		},
	}

	resp := ToResponse(o)

	assert.Equal(t, "25.50", resp.Total)
	assert.Equal(t, "Shipped", resp.Status)
	assert.Equal(t, "2026-03-01T12:30:00Z", resp.CreatedAt)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "20.00", resp.Items[0].Subtotal)
	assert.Nil(t, resp.Customer)

	o.CustomerName, o.CustomerEmail = "Ana", "ana@example.com"
	resp = ToResponse(o)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, uint(7), resp.Customer.ID)
}

func TestToResponses(t *testing.T) {
	out := ToResponses([]Order{{ID: 1, Total: dec("1")}, {ID: 2, Total: dec("2")}})
	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[1].ID)

	assert.NotNil(t, ToResponses(nil))
}

func TestTotalOf(t *testing.T) {
	assert.Equal(t, "25.50", TotalOf(sampleItems()).StringFixed(2))
	assert.True(t, TotalOf(nil).IsZero())
}

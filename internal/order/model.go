package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

// Statuses is the display order of the fulfilment buckets.
var Statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered}

type Order struct {
	ID        uint
	UserID    uint
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
	Items     []OrderItem

	// Set on admin reads only.
	CustomerName  string
	CustomerEmail string
}

// OrderItem freezes the unit price paid; it does not follow the live
// product price.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineItem is one purchased product handed to CreateOrderTx.
type LineItem struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

func TotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

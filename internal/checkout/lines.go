package checkout

import (
	"myshop-be/internal/cart"
	"myshop-be/internal/order"
	"myshop-be/internal/payment"
	"myshop-be/internal/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a price to cents, rounding half away from zero.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(hundred).Round(0).IntPart()
}

// validLine drops entries a restored session may carry but no order can hold.
func validLine(l cart.Line) (uint, bool) {
	if l.Quantity < 1 || l.Quantity > cart.MaxQuantity || l.Price.IsNegative() {
		return 0, false
	}
	id, err := utils.ToUint(l.ProductID)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func gatewayLineItems(lines []cart.Line) []payment.LineItem {
	items := make([]payment.LineItem, 0, len(lines))
	for _, l := range lines {
		if _, ok := validLine(l); !ok {
			continue
		}
		items = append(items, payment.LineItem{
			Name:       l.Name,
			UnitAmount: MinorUnits(l.Price),
			Quantity:   int64(l.Quantity),
		})
	}
	return items
}

func orderLineItems(lines []cart.Line) []order.LineItem {
	items := make([]order.LineItem, 0, len(lines))
	for _, l := range lines {
		id, ok := validLine(l)
		if !ok {
			continue
		}
		items = append(items, order.LineItem{
			ProductID:   id,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return items
}

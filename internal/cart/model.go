package cart

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxQuantity bounds a single entry so totals stay within what an order
// row can store.
const MaxQuantity = 999

// Item is the snapshot kept per product. Price is captured when the
// product is first added and never refreshed.
type Item struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart maps product id (string keyed) to its snapshot. It is owned by a
// single visitor session and is not safe for concurrent use.
type Cart struct {
	items map[string]Item
	dirty bool
}

func New() *Cart {
	return &Cart{items: make(map[string]Item)}
}

// Restore rebuilds a cart from session data. Entries are kept as-is, so
// callers must treat quantities and prices as untrusted.
func Restore(items map[string]Item) *Cart {
	c := New()
	for id, it := range items {
		c.items[id] = it
	}
	return c
}

// Snapshot returns a copy suitable for serialization.
func (c *Cart) Snapshot() map[string]Item {
	out := make(map[string]Item, len(c.items))
	for id, it := range c.items {
		out[id] = it
	}
	return out
}

// Put inserts a new snapshot entry or increments an existing one. The
// quantity saturates at MaxQuantity and a delta below one is ignored.
// The name and price of an existing entry are left untouched.
func (c *Cart) Put(productID, name string, price decimal.Decimal, delta int) {
	if delta < 1 {
		return
	}
	if it, ok := c.items[productID]; ok {
		it.Quantity = addQuantity(it.Quantity, delta)
		c.items[productID] = it
	} else {
		c.items[productID] = Item{Name: name, Price: price, Quantity: addQuantity(0, delta)}
	}
	c.dirty = true
}

// CanAdd reports whether delta more units fit in the entry.
func (c *Cart) CanAdd(productID string, delta int) bool {
	return delta >= 1 && delta <= MaxQuantity-c.Quantity(productID)
}

func addQuantity(current, delta int) int {
	if delta > MaxQuantity-current {
		return MaxQuantity
	}
	return current + delta
}

// RemoveOne decrements the entry, dropping it once it would reach zero.
func (c *Cart) RemoveOne(productID string) bool {
	it, ok := c.items[productID]
	if !ok {
		return false
	}
	if it.Quantity > 1 {
		it.Quantity--
		c.items[productID] = it
	} else {
		delete(c.items, productID)
	}
	c.dirty = true
	return true
}

func (c *Cart) Delete(productID string) bool {
	if _, ok := c.items[productID]; !ok {
		return false
	}
	delete(c.items, productID)
	c.dirty = true
	return true
}

// SetQuantity deletes the entry when qty < 1. Otherwise it only updates
// an existing entry, capped at MaxQuantity; an absent product is ignored.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		return c.Delete(productID)
	}
	if qty > MaxQuantity {
		qty = MaxQuantity
	}
	it, ok := c.items[productID]
	if !ok {
		return false
	}
	it.Quantity = qty
	c.items[productID] = it
	c.dirty = true
	return true
}

// Contents lists entries ordered by product id.
func (c *Cart) Contents() []Line {
	lines := make([]Line, 0, len(c.items))
	for id, it := range c.items {
		lines = append(lines, Line{
			ProductID: id,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lessID(lines[i].ProductID, lines[j].ProductID)
	})
	return lines
}

func (c *Cart) Line(productID string) (Line, bool) {
	it, ok := c.items[productID]
	if !ok {
		return Line{}, false
	}
	return Line{ProductID: productID, Name: it.Name, Price: it.Price, Quantity: it.Quantity}, true
}

func (c *Cart) Quantity(productID string) int {
	return c.items[productID].Quantity
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = make(map[string]Item)
	c.dirty = true
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Dirty reports whether the cart changed since it was loaded.
func (c *Cart) Dirty() bool { return c.dirty }

// numeric ids sort numerically, anything else after them lexically
func lessID(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// Package cart holds the transient cart types used as input to coupon
// evaluation. Carts are never persisted; all derived values are recomputed
// from the live item list on every call.
package cart

import "github.com/shopspring/decimal"

// Item represents a single line in the cart.
type Item struct {
	ProductID string
	Category  string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Cart is an ordered list of items.
type Cart struct {
	Items []Item
}

// Value returns the sum of unit price * quantity across all items.
func (c Cart) Value() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// TotalQuantity returns the summed quantity across all items. Note this is
// not the number of distinct lines: two lines of quantity 3 count as 6.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Categories returns the set of item categories present in the cart.
func (c Cart) Categories() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Items))
	for _, item := range c.Items {
		set[item.Category] = struct{}{}
	}
	return set
}

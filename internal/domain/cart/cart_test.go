package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCart_Value(t *testing.T) {
	c := Cart{Items: []Item{
		{ProductID: "p1", Category: "electronics", UnitPrice: decimal.NewFromInt(1000), Quantity: 2},
		{ProductID: "p2", Category: "books", UnitPrice: decimal.RequireFromString("249.50"), Quantity: 3},
	}}

	want := decimal.RequireFromString("2748.50") // 2*1000 + 3*249.50
	assert.True(t, want.Equal(c.Value()), "expected %s, got %s", want, c.Value())
}

func TestCart_Value_Empty(t *testing.T) {
	assert.True(t, Cart{}.Value().IsZero())
}

func TestCart_TotalQuantity(t *testing.T) {
	c := Cart{Items: []Item{
		{ProductID: "p1", Category: "electronics", UnitPrice: decimal.NewFromInt(1), Quantity: 2},
		{ProductID: "p2", Category: "books", UnitPrice: decimal.NewFromInt(1), Quantity: 3},
	}}

	// Units across lines, not the number of lines.
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestCart_Categories(t *testing.T) {
	c := Cart{Items: []Item{
		{ProductID: "p1", Category: "electronics", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: "p2", Category: "electronics", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: "p3", Category: "books", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
	}}

	got := c.Categories()
	assert.Len(t, got, 2)
	assert.Contains(t, got, "electronics")
	assert.Contains(t, got, "books")
}

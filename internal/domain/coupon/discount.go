package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeDiscount calculates the discount amount the coupon grants against
// the given cart value. Callers must only invoke it for eligible coupons.
// The result never exceeds the cart value, so the final price never goes
// negative.
func (c *Coupon) ComputeDiscount(cartValue decimal.Decimal) (decimal.Decimal, error) {
	switch c.DiscountType {
	case DiscountFlat:
		return decimal.Min(c.DiscountValue, cartValue), nil
	case DiscountPercent:
		amount := cartValue.Mul(c.DiscountValue).Div(hundred)
		if c.MaxDiscountAmount != nil {
			amount = decimal.Min(amount, *c.MaxDiscountAmount)
		}
		return decimal.Min(amount, cartValue), nil
	default:
		return decimal.Zero, errors.Errorf("unsupported discount type: %q", c.DiscountType)
	}
}

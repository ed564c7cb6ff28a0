package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/coupon-picker/internal/domain/cart"
)

// Result is the outcome of a best-coupon selection. Coupon is nil when no
// catalog entry was eligible; DiscountAmount is then zero and FinalPrice
// equals CartValue.
type Result struct {
	Coupon         *Coupon
	DiscountAmount decimal.Decimal
	CartValue      decimal.Decimal
	FinalPrice     decimal.Decimal
}

// Selector picks the best-discounting eligible coupon for a user and cart.
type Selector struct {
	store Store
	now   func() time.Time
}

// NewSelector creates a Selector over the given store.
func NewSelector(store Store) *Selector {
	return &Selector{store: store, now: time.Now}
}

// candidate pairs an eligible coupon with its computed discount.
type candidate struct {
	coupon   Coupon
	discount decimal.Decimal
}

// FindBest evaluates every coupon in the catalog against the user and cart
// and returns the winner under the composite ordering: higher discount
// first, then earlier end date (soonest-expiring preferred), then
// lexicographically smaller code. "No eligible coupon" is a normal result,
// not an error.
func (s *Selector) FindBest(ctx context.Context, user UserContext, ct cart.Cart) (Result, error) {
	coupons, err := s.store.List(ctx)
	if err != nil {
		return Result{}, errors.Wrap(err, "list coupons")
	}

	cartValue := ct.Value()
	now := s.now()

	var best *candidate
	for i := range coupons {
		c := coupons[i]
		if !c.InDateRange(now) {
			continue
		}

		usage, err := s.store.UsageCount(ctx, c.Code, user.ID)
		if err != nil {
			return Result{}, errors.Wrapf(err, "usage count for %q", c.Code)
		}
		if !c.UnderUsageLimit(usage) {
			continue
		}

		if !c.Eligible(user, ct) {
			continue
		}

		discount, err := c.ComputeDiscount(cartValue)
		if err != nil {
			return Result{}, errors.Wrapf(err, "compute discount for %q", c.Code)
		}

		cand := candidate{coupon: c, discount: discount}
		if best == nil || compareCandidates(cand, *best) < 0 {
			best = &cand
		}
	}

	if best == nil {
		return Result{
			Coupon:         nil,
			DiscountAmount: decimal.Zero,
			CartValue:      cartValue,
			FinalPrice:     cartValue,
		}, nil
	}

	return Result{
		Coupon:         &best.coupon,
		DiscountAmount: best.discount,
		CartValue:      cartValue,
		FinalPrice:     cartValue.Sub(best.discount),
	}, nil
}

// compareCandidates defines the total order used to rank eligible coupons.
// It returns a negative value when a ranks before b. The three keys, in
// precedence order: discount amount descending, end date ascending, code
// ascending.
func compareCandidates(a, b candidate) int {
	if cmp := b.discount.Cmp(a.discount); cmp != 0 {
		return cmp
	}
	if !a.coupon.EndDate.Equal(b.coupon.EndDate) {
		if a.coupon.EndDate.Before(b.coupon.EndDate) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.coupon.Code, b.coupon.Code)
}

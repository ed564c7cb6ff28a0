package coupon

import (
	"time"

	"github.com/xenking/coupon-picker/internal/domain/cart"
)

// InDateRange reports whether now falls within the coupon's validity window.
// The end date is inclusive through the last nanosecond of that calendar day.
func (c *Coupon) InDateRange(now time.Time) bool {
	if now.Before(c.StartDate) {
		return false
	}
	return !now.After(endOfDay(c.EndDate))
}

// endOfDay returns the last instant of the calendar day containing t.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// UnderUsageLimit reports whether the given per-user usage count is still
// below the coupon's limit. A nil limit means unlimited.
func (c *Coupon) UnderUsageLimit(usage int) bool {
	if c.UsageLimitPerUser == nil {
		return true
	}
	return usage < *c.UsageLimitPerUser
}

// Eligible evaluates the coupon's eligibility rule set against the user and
// cart. The checks form an explicit conjunction and short-circuit on the
// first failure; they are independent, so ordering does not affect the
// verdict. Date-range and usage-limit gating are separate (see InDateRange
// and UnderUsageLimit) because they need inputs this method does not take.
func (c *Coupon) Eligible(user UserContext, ct cart.Cart) bool {
	elig := c.Eligibility

	if len(elig.AllowedUserTiers) > 0 && !contains(elig.AllowedUserTiers, user.Tier) {
		return false
	}

	if elig.MinLifetimeSpend != nil && user.LifetimeSpend.LessThan(*elig.MinLifetimeSpend) {
		return false
	}

	if elig.MinOrdersPlaced != nil && user.OrdersPlaced < *elig.MinOrdersPlaced {
		return false
	}

	if elig.FirstOrderOnly && user.OrdersPlaced > 0 {
		return false
	}

	if len(elig.AllowedCountries) > 0 && !contains(elig.AllowedCountries, user.Country) {
		return false
	}

	if elig.MinCartValue != nil && ct.Value().LessThan(*elig.MinCartValue) {
		return false
	}

	if len(elig.ApplicableCategories) > 0 || len(elig.ExcludedCategories) > 0 {
		categories := ct.Categories()

		if len(elig.ApplicableCategories) > 0 && !intersects(elig.ApplicableCategories, categories) {
			return false
		}
		if len(elig.ExcludedCategories) > 0 && intersects(elig.ExcludedCategories, categories) {
			return false
		}
	}

	if elig.MinItemsCount != nil && ct.TotalQuantity() < *elig.MinItemsCount {
		return false
	}

	return true
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, s := range values {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

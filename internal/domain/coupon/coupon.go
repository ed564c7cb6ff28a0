// Package coupon implements the coupon catalog model and the selection
// engine: eligibility evaluation, discount computation, and best-coupon
// ranking over an injected store.
package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountFlat subtracts a fixed amount, capped at the cart value.
	DiscountFlat DiscountType = "FLAT"
	// DiscountPercent subtracts a percentage of the cart value, optionally
	// capped by the coupon's MaxDiscountAmount.
	DiscountPercent DiscountType = "PERCENT"
)

var (
	// ErrDuplicateCode is returned when adding a coupon whose code already
	// exists in the store (codes are case-insensitive).
	ErrDuplicateCode = errors.New("coupon code already exists")
	// ErrNotFound is returned when a requested coupon code does not exist.
	ErrNotFound = errors.New("coupon not found")
)

// Eligibility is a conjunction of independent optional constraints. A nil
// pointer or empty slice means "no constraint" for that field; a coupon with
// the zero Eligibility is eligible to everyone.
type Eligibility struct {
	AllowedUserTiers     []string
	MinLifetimeSpend     *decimal.Decimal
	MinOrdersPlaced      *int
	FirstOrderOnly       bool
	AllowedCountries     []string
	MinCartValue         *decimal.Decimal
	ApplicableCategories []string
	ExcludedCategories   []string
	MinItemsCount        *int
}

// Coupon is an immutable-once-created catalog record keyed by its
// uppercased code.
type Coupon struct {
	Code              string
	Description       string
	DiscountType      DiscountType
	DiscountValue     decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	// UsageLimitPerUser is the maximum redemptions per user. Nil means
	// unlimited; zero is a real limit that makes the coupon unredeemable.
	UsageLimitPerUser *int
	Eligibility       Eligibility
}

// UserContext is the transient per-request view of the requesting user.
type UserContext struct {
	ID            string
	Tier          string
	Country       string
	LifetimeSpend decimal.Decimal
	OrdersPlaced  int
}

// NormalizeCode uppercases a coupon code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(code)
}

// Store provides access to the coupon catalog and per-user usage counters.
type Store interface {
	// List returns all coupons in insertion order.
	List(ctx context.Context) ([]Coupon, error)
	// Get returns the coupon for the given code (case-insensitive) or
	// ErrNotFound.
	Get(ctx context.Context, code string) (*Coupon, error)
	// Add inserts a coupon, normalizing its code to uppercase. Returns
	// ErrDuplicateCode when the code is already present.
	Add(ctx context.Context, c Coupon) error
	// Remove deletes the coupon for the given code (case-insensitive).
	// Returns ErrNotFound when absent.
	Remove(ctx context.Context, code string) error
	// UsageCount returns how many times the user has redeemed the coupon.
	// Unseen pairs report zero.
	UsageCount(ctx context.Context, code, userID string) (int, error)
	// IncrementUsage bumps the redemption counter for (code, user),
	// creating entries as needed.
	IncrementUsage(ctx context.Context, code, userID string) error
}

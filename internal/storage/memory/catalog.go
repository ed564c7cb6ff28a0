// Package memory implements the coupon store as an in-process catalog. The
// catalog lives for the process lifetime and holds nothing across restarts.
package memory

import (
	"context"
	"sync"

	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

var _ coupon.Store = (*Catalog)(nil)

// Catalog is an insertion-ordered, case-insensitive coupon store with
// per-(coupon, user) usage counters. All operations are safe for concurrent
// use; usage increments are read-modify-write under the write lock so
// concurrent redemptions never lose counts.
type Catalog struct {
	mu      sync.RWMutex
	byCode  map[string]coupon.Coupon
	ordered []string // uppercased codes, insertion order
	usage   map[string]map[string]int
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byCode: make(map[string]coupon.Coupon),
		usage:  make(map[string]map[string]int),
	}
}

// List returns all coupons in insertion order.
func (c *Catalog) List(_ context.Context) ([]coupon.Coupon, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]coupon.Coupon, 0, len(c.ordered))
	for _, code := range c.ordered {
		out = append(out, c.byCode[code])
	}
	return out, nil
}

// Get returns the coupon for the given code, looked up case-insensitively.
func (c *Catalog) Get(_ context.Context, code string) (*coupon.Coupon, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cp, ok := c.byCode[coupon.NormalizeCode(code)]
	if !ok {
		return nil, coupon.ErrNotFound
	}
	return &cp, nil
}

// Add inserts a coupon, normalizing its code to uppercase. It returns
// coupon.ErrDuplicateCode when the code is already present, leaving the
// existing coupon untouched.
func (c *Catalog) Add(_ context.Context, cp coupon.Coupon) error {
	code := coupon.NormalizeCode(cp.Code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byCode[code]; exists {
		return coupon.ErrDuplicateCode
	}

	cp.Code = code
	c.byCode[code] = cp
	c.ordered = append(c.ordered, code)
	return nil
}

// Remove deletes the coupon for the given code along with its usage
// counters. It returns coupon.ErrNotFound when the code is absent.
func (c *Catalog) Remove(_ context.Context, code string) error {
	norm := coupon.NormalizeCode(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byCode[norm]; !exists {
		return coupon.ErrNotFound
	}

	delete(c.byCode, norm)
	delete(c.usage, norm)
	for i, existing := range c.ordered {
		if existing == norm {
			c.ordered = append(c.ordered[:i], c.ordered[i+1:]...)
			break
		}
	}
	return nil
}

// UsageCount returns the redemption counter for (code, user), zero if unseen.
func (c *Catalog) UsageCount(_ context.Context, code, userID string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.usage[coupon.NormalizeCode(code)][userID], nil
}

// IncrementUsage bumps the redemption counter for (code, user), creating the
// per-coupon map on first use.
func (c *Catalog) IncrementUsage(_ context.Context, code, userID string) error {
	norm := coupon.NormalizeCode(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	users, ok := c.usage[norm]
	if !ok {
		users = make(map[string]int)
		c.usage[norm] = users
	}
	users[userID]++
	return nil
}

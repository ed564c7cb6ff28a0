package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

func testCoupon(code string) coupon.Coupon {
	return coupon.Coupon{
		Code:          code,
		Description:   "test coupon",
		DiscountType:  coupon.DiscountFlat,
		DiscountValue: decimal.NewFromInt(100),
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCatalog_AddAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()

	require.NoError(t, c.Add(ctx, testCoupon("save10")))

	// Codes are normalized to uppercase on insert and on lookup.
	got, err := c.Get(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", got.Code)

	got, err = c.Get(ctx, "sAvE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", got.Code)

	_, err = c.Get(ctx, "MISSING")
	require.ErrorIs(t, err, coupon.ErrNotFound)
}

func TestCatalog_AddDuplicateCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()

	original := testCoupon("SAVE10")
	require.NoError(t, c.Add(ctx, original))

	dup := testCoupon("save10")
	dup.Description = "impostor"
	err := c.Add(ctx, dup)
	require.ErrorIs(t, err, coupon.ErrDuplicateCode)

	// The stored coupon is untouched by the rejected insert.
	got, err := c.Get(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "test coupon", got.Description)
}

func TestCatalog_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()

	for _, code := range []string{"CHARLIE", "ALPHA", "BRAVO"} {
		require.NoError(t, c.Add(ctx, testCoupon(code)))
	}

	coupons, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 3)
	assert.Equal(t, "CHARLIE", coupons[0].Code)
	assert.Equal(t, "ALPHA", coupons[1].Code)
	assert.Equal(t, "BRAVO", coupons[2].Code)
}

func TestCatalog_Remove(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()

	require.NoError(t, c.Add(ctx, testCoupon("SAVE10")))
	require.NoError(t, c.Remove(ctx, "save10"))

	_, err := c.Get(ctx, "SAVE10")
	require.ErrorIs(t, err, coupon.ErrNotFound)

	err = c.Remove(ctx, "SAVE10")
	require.ErrorIs(t, err, coupon.ErrNotFound)

	coupons, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, coupons)
}

func TestCatalog_UsageCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()
	require.NoError(t, c.Add(ctx, testCoupon("SAVE10")))

	count, err := c.UsageCount(ctx, "SAVE10", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, c.IncrementUsage(ctx, "save10", "u1"))
	require.NoError(t, c.IncrementUsage(ctx, "SAVE10", "u1"))
	require.NoError(t, c.IncrementUsage(ctx, "SAVE10", "u2"))

	count, err = c.UsageCount(ctx, "SAVE10", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = c.UsageCount(ctx, "SAVE10", "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCatalog_RemoveDropsUsage(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()

	require.NoError(t, c.Add(ctx, testCoupon("SAVE10")))
	require.NoError(t, c.IncrementUsage(ctx, "SAVE10", "u1"))
	require.NoError(t, c.Remove(ctx, "SAVE10"))

	// Re-adding the code starts with fresh counters.
	require.NoError(t, c.Add(ctx, testCoupon("SAVE10")))
	count, err := c.UsageCount(ctx, "SAVE10", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCatalog_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog()
	require.NoError(t, c.Add(ctx, testCoupon("SAVE10")))

	const workers = 16
	const perWorker = 100

	done := make(chan struct{})
	for range workers {
		go func() {
			defer func() { done <- struct{}{} }()
			for range perWorker {
				_ = c.IncrementUsage(ctx, "SAVE10", "u1")
			}
		}()
	}
	for range workers {
		<-done
	}

	count, err := c.UsageCount(ctx, "SAVE10", "u1")
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, count, "no increments may be lost")
}

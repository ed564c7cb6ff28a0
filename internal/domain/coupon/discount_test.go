package coupon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name      string
		coupon    Coupon
		cartValue int64
		want      string
	}{
		{
			name:      "flat below cart value",
			coupon:    Coupon{DiscountType: DiscountFlat, DiscountValue: decimal.NewFromInt(200)},
			cartValue: 2500,
			want:      "200",
		},
		{
			name:      "flat capped at cart value",
			coupon:    Coupon{DiscountType: DiscountFlat, DiscountValue: decimal.NewFromInt(200)},
			cartValue: 150,
			want:      "150",
		},
		{
			name:      "percent of cart value",
			coupon:    Coupon{DiscountType: DiscountPercent, DiscountValue: decimal.NewFromInt(10)},
			cartValue: 2500,
			want:      "250",
		},
		{
			name: "percent capped by max discount amount",
			coupon: Coupon{
				DiscountType:      DiscountPercent,
				DiscountValue:     decimal.NewFromInt(20),
				MaxDiscountAmount: decPtr(500),
			},
			cartValue: 10000, // 20% would be 2000
			want:      "500",
		},
		{
			name: "percent under max discount amount",
			coupon: Coupon{
				DiscountType:      DiscountPercent,
				DiscountValue:     decimal.NewFromInt(20),
				MaxDiscountAmount: decPtr(500),
			},
			cartValue: 2000,
			want:      "400",
		},
		{
			name:      "hundred percent equals cart value",
			coupon:    Coupon{DiscountType: DiscountPercent, DiscountValue: decimal.NewFromInt(100)},
			cartValue: 777,
			want:      "777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.coupon.ComputeDiscount(decimal.NewFromInt(tt.cartValue))
			require.NoError(t, err)

			want := decimal.RequireFromString(tt.want)
			assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
			assert.True(t, got.LessThanOrEqual(decimal.NewFromInt(tt.cartValue)),
				"discount must never exceed cart value")
		})
	}
}

func TestComputeDiscount_UnsupportedType(t *testing.T) {
	c := Coupon{DiscountType: "BOGO", DiscountValue: decimal.NewFromInt(1)}
	_, err := c.ComputeDiscount(decimal.NewFromInt(100))
	require.Error(t, err)
}

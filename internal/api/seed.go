package api

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

// ParseCoupons decodes a JSON array of coupons in the create-endpoint wire
// shape, running the same validation. Used to load seed catalogs.
func ParseCoupons(data []byte) ([]coupon.Coupon, error) {
	var dtos []couponDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, errors.Wrap(err, "decode coupons")
	}

	out := make([]coupon.Coupon, len(dtos))
	for i := range dtos {
		c, err := dtos[i].toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "coupon %d", i)
		}
		out[i] = c
	}
	return out, nil
}

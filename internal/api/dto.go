package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/coupon-picker/internal/domain/cart"
	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

// dateLayout is the calendar-date wire format for coupon validity windows.
const dateLayout = "2006-01-02"

// eligibilityDTO mirrors coupon.Eligibility on the wire. Every field is
// optional; pointers distinguish "absent" from zero values.
type eligibilityDTO struct {
	AllowedUserTiers     []string `json:"allowedUserTiers,omitempty"`
	MinLifetimeSpend     *float64 `json:"minLifetimeSpend,omitempty"`
	MinOrdersPlaced      *int     `json:"minOrdersPlaced,omitempty"`
	FirstOrderOnly       bool     `json:"firstOrderOnly,omitempty"`
	AllowedCountries     []string `json:"allowedCountries,omitempty"`
	MinCartValue         *float64 `json:"minCartValue,omitempty"`
	ApplicableCategories []string `json:"applicableCategories,omitempty"`
	ExcludedCategories   []string `json:"excludedCategories,omitempty"`
	MinItemsCount        *int     `json:"minItemsCount,omitempty"`
}

// couponDTO is the wire representation of a coupon. Monetary fields are JSON
// numbers; the engine works in decimals and only this layer converts.
type couponDTO struct {
	Code              string          `json:"code"`
	Description       string          `json:"description"`
	DiscountType      string          `json:"discountType"`
	DiscountValue     *float64        `json:"discountValue,omitempty"`
	MaxDiscountAmount *float64        `json:"maxDiscountAmount,omitempty"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	UsageLimitPerUser *int            `json:"usageLimitPerUser,omitempty"`
	Eligibility       *eligibilityDTO `json:"eligibility,omitempty"`
}

// validationError is an input rejection surfaced as a 400 response.
type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func missingField(name string) error {
	return &validationError{message: fmt.Sprintf("Missing required field: %s", name)}
}

// toDomain validates the DTO and converts it to a domain coupon. The code is
// uppercased and eligibility categories are lowercased here, at the
// boundary, so the engine can compare exact strings.
func (d *couponDTO) toDomain() (coupon.Coupon, error) {
	for _, f := range []struct {
		name, value string
	}{
		{"code", d.Code},
		{"description", d.Description},
		{"discountType", d.DiscountType},
		{"startDate", d.StartDate},
		{"endDate", d.EndDate},
	} {
		if f.value == "" {
			return coupon.Coupon{}, missingField(f.name)
		}
	}
	if d.DiscountValue == nil {
		return coupon.Coupon{}, missingField("discountValue")
	}

	discountType := coupon.DiscountType(d.DiscountType)
	if discountType != coupon.DiscountFlat && discountType != coupon.DiscountPercent {
		return coupon.Coupon{}, &validationError{message: "discountType must be 'FLAT' or 'PERCENT'"}
	}

	if *d.DiscountValue <= 0 {
		return coupon.Coupon{}, &validationError{message: "discountValue must be a positive number"}
	}

	startDate, err := parseDate(d.StartDate)
	if err != nil {
		return coupon.Coupon{}, &validationError{message: "startDate must be a date in YYYY-MM-DD format"}
	}
	endDate, err := parseDate(d.EndDate)
	if err != nil {
		return coupon.Coupon{}, &validationError{message: "endDate must be a date in YYYY-MM-DD format"}
	}

	if d.UsageLimitPerUser != nil && *d.UsageLimitPerUser < 0 {
		return coupon.Coupon{}, &validationError{message: "usageLimitPerUser must be non-negative"}
	}

	c := coupon.Coupon{
		Code:              coupon.NormalizeCode(d.Code),
		Description:       d.Description,
		DiscountType:      discountType,
		DiscountValue:     decimal.NewFromFloat(*d.DiscountValue),
		StartDate:         startDate,
		EndDate:           endDate,
		UsageLimitPerUser: d.UsageLimitPerUser,
	}
	if d.MaxDiscountAmount != nil {
		max := decimal.NewFromFloat(*d.MaxDiscountAmount)
		c.MaxDiscountAmount = &max
	}
	if d.Eligibility != nil {
		c.Eligibility = d.Eligibility.toDomain()
	}
	return c, nil
}

// lowerAll lowercases every element of a slice, preserving nil.
func lowerAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func (d *eligibilityDTO) toDomain() coupon.Eligibility {
	elig := coupon.Eligibility{
		AllowedUserTiers:     d.AllowedUserTiers,
		MinOrdersPlaced:      d.MinOrdersPlaced,
		FirstOrderOnly:       d.FirstOrderOnly,
		AllowedCountries:     d.AllowedCountries,
		ApplicableCategories: lowerAll(d.ApplicableCategories),
		ExcludedCategories:   lowerAll(d.ExcludedCategories),
		MinItemsCount:        d.MinItemsCount,
	}
	if d.MinLifetimeSpend != nil {
		v := decimal.NewFromFloat(*d.MinLifetimeSpend)
		elig.MinLifetimeSpend = &v
	}
	if d.MinCartValue != nil {
		v := decimal.NewFromFloat(*d.MinCartValue)
		elig.MinCartValue = &v
	}
	return elig
}

// fromDomain converts a domain coupon back to its wire form.
func fromDomain(c *coupon.Coupon) couponDTO {
	value := c.DiscountValue.InexactFloat64()
	dto := couponDTO{
		Code:              c.Code,
		Description:       c.Description,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     &value,
		StartDate:         c.StartDate.Format(dateLayout),
		EndDate:           c.EndDate.Format(dateLayout),
		UsageLimitPerUser: c.UsageLimitPerUser,
	}
	if c.MaxDiscountAmount != nil {
		max := c.MaxDiscountAmount.InexactFloat64()
		dto.MaxDiscountAmount = &max
	}

	elig := c.Eligibility
	if !eligibilityEmpty(elig) {
		dto.Eligibility = &eligibilityDTO{
			AllowedUserTiers:     elig.AllowedUserTiers,
			MinOrdersPlaced:      elig.MinOrdersPlaced,
			FirstOrderOnly:       elig.FirstOrderOnly,
			AllowedCountries:     elig.AllowedCountries,
			ApplicableCategories: elig.ApplicableCategories,
			ExcludedCategories:   elig.ExcludedCategories,
			MinItemsCount:        elig.MinItemsCount,
		}
		if elig.MinLifetimeSpend != nil {
			v := elig.MinLifetimeSpend.InexactFloat64()
			dto.Eligibility.MinLifetimeSpend = &v
		}
		if elig.MinCartValue != nil {
			v := elig.MinCartValue.InexactFloat64()
			dto.Eligibility.MinCartValue = &v
		}
	}
	return dto
}

func eligibilityEmpty(e coupon.Eligibility) bool {
	return len(e.AllowedUserTiers) == 0 &&
		e.MinLifetimeSpend == nil &&
		e.MinOrdersPlaced == nil &&
		!e.FirstOrderOnly &&
		len(e.AllowedCountries) == 0 &&
		e.MinCartValue == nil &&
		len(e.ApplicableCategories) == 0 &&
		len(e.ExcludedCategories) == 0 &&
		e.MinItemsCount == nil
}

// userDTO is the wire form of the best-coupon user context. Pointers detect
// absent fields so validation can name the missing one.
type userDTO struct {
	UserID        *string  `json:"userId"`
	UserTier      *string  `json:"userTier"`
	Country       *string  `json:"country"`
	LifetimeSpend *float64 `json:"lifetimeSpend"`
	OrdersPlaced  *int     `json:"ordersPlaced"`
}

func (d *userDTO) toDomain() (coupon.UserContext, error) {
	switch {
	case d.UserID == nil:
		return coupon.UserContext{}, &validationError{message: "Missing required user field: userId"}
	case d.UserTier == nil:
		return coupon.UserContext{}, &validationError{message: "Missing required user field: userTier"}
	case d.Country == nil:
		return coupon.UserContext{}, &validationError{message: "Missing required user field: country"}
	case d.LifetimeSpend == nil:
		return coupon.UserContext{}, &validationError{message: "Missing required user field: lifetimeSpend"}
	case d.OrdersPlaced == nil:
		return coupon.UserContext{}, &validationError{message: "Missing required user field: ordersPlaced"}
	}

	return coupon.UserContext{
		ID:            *d.UserID,
		Tier:          *d.UserTier,
		Country:       *d.Country,
		LifetimeSpend: decimal.NewFromFloat(*d.LifetimeSpend),
		OrdersPlaced:  *d.OrdersPlaced,
	}, nil
}

// cartItemDTO is the wire form of a cart line.
type cartItemDTO struct {
	ProductID *string  `json:"productId"`
	Category  *string  `json:"category"`
	UnitPrice *float64 `json:"unitPrice"`
	Quantity  *int     `json:"quantity"`
}

// cartDTO is the wire form of the cart.
type cartDTO struct {
	Items []cartItemDTO `json:"items"`
}

func (d *cartDTO) toDomain() (cart.Cart, error) {
	if d.Items == nil {
		return cart.Cart{}, &validationError{message: "Cart must have an items array"}
	}

	items := make([]cart.Item, len(d.Items))
	for i, item := range d.Items {
		missing := ""
		switch {
		case item.ProductID == nil:
			missing = "productId"
		case item.Category == nil:
			missing = "category"
		case item.UnitPrice == nil:
			missing = "unitPrice"
		case item.Quantity == nil:
			missing = "quantity"
		}
		if missing != "" {
			return cart.Cart{}, &validationError{
				message: fmt.Sprintf("Missing required field in cart item %d: %s", i, missing),
			}
		}
		if *item.Quantity < 1 {
			return cart.Cart{}, &validationError{
				message: fmt.Sprintf("quantity must be at least 1 in cart item %d", i),
			}
		}

		items[i] = cart.Item{
			ProductID: *item.ProductID,
			Category:  strings.ToLower(*item.Category),
			UnitPrice: decimal.NewFromFloat(*item.UnitPrice),
			Quantity:  *item.Quantity,
		}
	}
	return cart.Cart{Items: items}, nil
}

// parseDate accepts calendar dates and, as a fallback, full RFC 3339
// timestamps (truncated to their date).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// money rounds a decimal to 2 places and converts it to a JSON number.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

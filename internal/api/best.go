package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
)

// bestCouponRequest is the body of the best-coupon endpoint.
type bestCouponRequest struct {
	User *userDTO `json:"user"`
	Cart *cartDTO `json:"cart"`
}

// bestCouponResponse carries the selection outcome. BestCoupon is null when
// nothing in the catalog was eligible; that is a normal 200, not an error.
type bestCouponResponse struct {
	BestCoupon     *couponDTO `json:"bestCoupon"`
	DiscountAmount float64    `json:"discountAmount"`
	CartValue      float64    `json:"cartValue"`
	FinalPrice     float64    `json:"finalPrice"`
}

// BestCoupon validates the user/cart input and runs the selection engine.
func (h *Handler) BestCoupon(w http.ResponseWriter, r *http.Request) {
	var req bestCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.User == nil || req.Cart == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: user and cart")
		return
	}

	user, err := req.User.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ct, err := req.Cart.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.selector.FindBest(r.Context(), user, ct)
	if err != nil {
		serverError(w, r, errors.Wrap(err, "find best coupon"))
		return
	}

	resp := bestCouponResponse{
		DiscountAmount: money(result.DiscountAmount),
		CartValue:      money(result.CartValue),
		FinalPrice:     money(result.FinalPrice),
	}
	if result.Coupon != nil {
		dto := fromDomain(result.Coupon)
		resp.BestCoupon = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

// ListCoupons returns every coupon in the catalog, insertion-ordered.
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.store.List(r.Context())
	if err != nil {
		serverError(w, r, errors.Wrap(err, "list coupons"))
		return
	}

	out := make([]couponDTO, len(coupons))
	for i := range coupons {
		out[i] = fromDomain(&coupons[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"coupons": out})
}

// CreateCoupon validates the request body and inserts a new coupon.
// Duplicate codes (case-insensitive) are a 409 conflict; the stored coupon
// stays untouched.
func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var dto couponDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	c, err := dto.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Add(r.Context(), c); err != nil {
		if errors.Is(err, coupon.ErrDuplicateCode) {
			writeError(w, http.StatusConflict, "Coupon code \""+c.Code+"\" already exists")
			return
		}
		serverError(w, r, errors.Wrap(err, "add coupon"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Coupon created successfully",
		"coupon":  fromDomain(&c),
	})
}

// DeleteCoupon removes the coupon named by the ?code= query parameter.
func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing coupon code")
		return
	}

	if err := h.store.Remove(r.Context(), code); err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(w, r, errors.Wrap(err, "remove coupon"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted successfully"})
}

// redeemRequest is the body of the redeem endpoint.
type redeemRequest struct {
	UserID string `json:"userId"`
}

// RedeemCoupon records one redemption of the coupon by the given user. The
// selector only ever reads these counters; incrementing is the caller's
// responsibility after an actual redemption, which is this endpoint.
func (h *Handler) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: userId")
		return
	}

	if _, err := h.store.Get(r.Context(), code); err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(w, r, errors.Wrap(err, "get coupon"))
		return
	}

	if err := h.store.IncrementUsage(r.Context(), code, req.UserID); err != nil {
		serverError(w, r, errors.Wrap(err, "increment usage"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Package api contains the HTTP boundary: request validation, JSON mapping,
// and domain error translation. All rule evaluation lives in the domain
// packages; handlers reject malformed input before the engine ever runs.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/coupon-picker/internal/domain/auth"
	"github.com/xenking/coupon-picker/internal/domain/coupon"
)

// Handler serves the coupon API, delegating to the injected store, selector,
// and auth service.
type Handler struct {
	store    coupon.Store
	selector *coupon.Selector
	auth     *auth.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(store coupon.Store, selector *coupon.Selector, authSvc *auth.Service) *Handler {
	return &Handler{
		store:    store,
		selector: selector,
		auth:     authSvc,
	}
}

// Routes registers all API endpoints on a new ServeMux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/coupons", h.ListCoupons)
	mux.HandleFunc("POST /api/coupons", h.CreateCoupon)
	mux.HandleFunc("DELETE /api/coupons", h.DeleteCoupon)
	mux.HandleFunc("POST /api/coupons/best", h.BestCoupon)
	mux.HandleFunc("POST /api/coupons/{code}/redeem", h.RedeemCoupon)
	return mux
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with the uniform {"error": message} body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// serverError logs err and responds 500 without leaking internals.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

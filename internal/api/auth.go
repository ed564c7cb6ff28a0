package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/coupon-picker/internal/domain/auth"
)

// loginRequest is the body of the demo login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginUser is the profile payload returned on success. The password never
// leaves the auth service.
type loginUser struct {
	UserID        string  `json:"userId"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	UserTier      string  `json:"userTier"`
	Country       string  `json:"country"`
	LifetimeSpend float64 `json:"lifetimeSpend"`
	OrdersPlaced  int     `json:"ordersPlaced"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
	Token   string    `json:"token"`
}

// Login authenticates the demo user and issues an opaque session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		serverError(w, r, errors.Wrap(err, "authenticate"))
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: loginUser{
			UserID:        user.ID,
			Email:         user.Email,
			Name:          user.Name,
			UserTier:      user.Tier,
			Country:       user.Country,
			LifetimeSpend: user.LifetimeSpend.InexactFloat64(),
			OrdersPlaced:  user.OrdersPlaced,
		},
		Token: token,
	})
}

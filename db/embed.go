// Package db provides the embedded default coupon catalog loaded at startup.
package db

import _ "embed"

// SeedCoupons holds the default catalog in the same JSON shape the create
// endpoint accepts.
//
//go:embed seed/coupons.json
var SeedCoupons []byte

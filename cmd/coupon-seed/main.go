// Command coupon-seed bulk-loads a coupons JSON file into a running service
// through the create endpoint. Existing codes are reported and skipped.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
)

func main() {
	var (
		baseURL     string
		couponsFile string
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "base URL of the coupon service")
	flag.StringVar(&couponsFile, "coupons-file", "db/seed/coupons.json", "path to coupons JSON file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, baseURL, couponsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, baseURL, couponsFile string) error {
	data, err := os.ReadFile(couponsFile)
	if err != nil {
		return errors.Wrapf(err, "read %s", couponsFile)
	}

	// Decode as raw objects so the service performs all validation.
	var coupons []json.RawMessage
	if err := json.Unmarshal(data, &coupons); err != nil {
		return errors.Wrap(err, "decode coupons file")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	created, skipped := 0, 0

	for i, raw := range coupons {
		status, body, err := postCoupon(ctx, client, baseURL, raw)
		if err != nil {
			return errors.Wrapf(err, "coupon %d", i)
		}

		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			skipped++
		default:
			return errors.Errorf("coupon %d: unexpected status %d: %s", i, status, body)
		}
	}

	slog.Info("seed finished", slog.Int("created", created), slog.Int("skipped", skipped))
	return nil
}

func postCoupon(ctx context.Context, client *http.Client, baseURL string, body json.RawMessage) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/coupons", baseURL), bytes.NewReader(body))
	if err != nil {
		return 0, "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", errors.Wrap(err, "post coupon")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(respBody), nil
}

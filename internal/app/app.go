// Package app wires the service together: configuration, store seeding,
// domain services, HTTP handlers, middleware, health probes, and graceful
// shutdown.
package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/coupon-picker/db"
	"github.com/xenking/coupon-picker/internal/api"
	"github.com/xenking/coupon-picker/internal/domain/auth"
	"github.com/xenking/coupon-picker/internal/domain/coupon"
	"github.com/xenking/coupon-picker/internal/storage/memory"
	"github.com/xenking/coupon-picker/pkg/health"
	"github.com/xenking/coupon-picker/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// In-memory catalog, created here and owned for the process lifetime.
	catalog := memory.NewCatalog()
	if err := seedCatalog(ctx, lg, catalog, cfg.SeedFile); err != nil {
		return errors.Wrap(err, "seed catalog")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	selector := coupon.NewSelector(catalog)
	authSvc := auth.NewService(auth.User{
		ID:            cfg.Demo.UserID,
		Email:         cfg.Demo.Email,
		Name:          cfg.Demo.Name,
		Tier:          cfg.Demo.Tier,
		Country:       cfg.Demo.Country,
		LifetimeSpend: decimal.NewFromFloat(cfg.Demo.LifetimeSpend),
		OrdersPlaced:  cfg.Demo.OrdersPlaced,
	}, cfg.Demo.Password)

	// HTTP handlers: health endpoints + API routes on one server.
	h := api.NewHandler(catalog, selector, authSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("coupon-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		// Graceful shutdown: flip readiness, drain, then stop.
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})
	return g.Wait()
}

// seedCatalog loads the startup coupon set: either the configured JSON file
// or the embedded default catalog.
func seedCatalog(ctx context.Context, lg *zap.Logger, store coupon.Store, seedFile string) error {
	data := db.SeedCoupons
	if seedFile != "" {
		var err error
		data, err = os.ReadFile(seedFile)
		if err != nil {
			return errors.Wrapf(err, "read seed file %s", seedFile)
		}
	}

	coupons, err := api.ParseCoupons(data)
	if err != nil {
		return err
	}

	for _, c := range coupons {
		if err := store.Add(ctx, c); err != nil {
			return errors.Wrapf(err, "add seed coupon %q", c.Code)
		}
	}

	lg.Info("Catalog seeded", zap.Int("coupons", len(coupons)))
	return nil
}

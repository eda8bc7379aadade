package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"wemint/internal/catalog"
	"wemint/internal/checkout"
	"wemint/internal/config"
	"wemint/internal/storefront"
	"wemint/pkg/kit"
)

func main() {
	service := "storefront"

	cfg, err := config.Load()
	if err != nil {
		boot := kit.NewLogger(service, kit.LogOptions{})
		boot.Fatal("invalid config", zap.Error(err))
	}

	log := kit.NewLogger(service, kit.LogOptions{Level: cfg.Log.Level, File: cfg.Log.File})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	slot, closeSlot, err := catalog.OpenSlot(ctx, cfg.SlotOptions())
	if err != nil {
		log.Fatal("open catalog slot failed", zap.Error(err), zap.String("driver", cfg.Store.Driver))
	}
	defer func() { _ = closeSlot() }()

	store := catalog.NewStore(slot)
	if cfg.Seed {
		seeded, err := store.Initialize(ctx, catalog.DefaultProducts())
		if err != nil {
			log.Fatal("seed catalog failed", zap.Error(err))
		}
		log.Info("catalog ready", zap.Bool("seeded", seeded), zap.String("driver", cfg.Store.Driver))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	checkoutSvc := checkout.NewService(store, cfg.Checkout.Delay, log, reg)

	h := storefront.NewHandler(
		&catalog.Server{Store: store, Log: log},
		&checkout.Server{Service: checkoutSvc, Log: log},
		storefront.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsToken:   cfg.Metrics.Token,
			CheckoutLimit:  cfg.Checkout.RateLimit,
			CheckoutWindow: cfg.Checkout.RateLimitEvery,
			TrustProxy:     cfg.TrustProxy,
		},
	)

	err = kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log)

	// Sales already paid for still land before the slot is closed.
	checkoutSvc.Wait()

	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

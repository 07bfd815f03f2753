// Package main - Entry point for the translation quote server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"translation-quote/adapters/regime"
	"translation-quote/api"
	"translation-quote/core/engine"
	"translation-quote/internal/config"
	"translation-quote/internal/logging"
	"translation-quote/internal/metrics"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := flag.String("config", "quote.json", "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	regimePath := flag.String("regime", "", "Regime file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *regimePath != "" {
		cfg.Regime.Path = *regimePath
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	fallback, err := cfg.FallbackTax()
	if err != nil {
		return err
	}

	// Fail fast on a broken regime file; later edits are picked up live.
	source := regime.NewFileSource(cfg.Regime.Path)
	current, err := source.Regime(context.Background())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(cfg.Server.MetricsNamespace, reg)

	eng := engine.NewEngine(source, m, engine.EngineConfig{
		DefaultRegion: cfg.Regime.DefaultRegion,
		FallbackTax:   fallback,
		DiffThreshold: cfg.Regime.DiffThreshold,
	})

	srv := api.NewServer(eng, api.Options{
		Version:      version,
		Metrics:      m,
		Gatherer:     reg,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	})

	logging.Info("translation quote server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("regime", current.ID),
		zap.String("regime_path", cfg.Regime.Path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"Clarifier/internal/config"
	"Clarifier/internal/logging"
	"Clarifier/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CLARIFIER_CONFIG"), "path to YAML config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Get().Fatalw("config", "error", err)
	}
	if err := logging.Init(cfg.Debug); err != nil {
		logging.Get().Fatalw("logger", "error", err)
	}
	defer logging.Sync()

	if err := server.Serve(ctx, cfg); err != nil {
		logging.Get().Fatalw("server error", "error", err)
	}
}

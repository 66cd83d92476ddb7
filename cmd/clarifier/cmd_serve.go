package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"Clarifier/internal/auth"
	"Clarifier/internal/config"
	"Clarifier/internal/logging"
	"Clarifier/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("area") {
			cfg.Area = areaFlag
		}
		if err := logging.Init(cfg.Debug); err != nil {
			return err
		}
		defer logging.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, cfg)
	},
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the export and scenario routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if cfg.TokenKey == "" {
			return fmt.Errorf("TOKEN_KEY is not configured")
		}
		tok, err := auth.IssueToken([]byte(cfg.TokenKey), tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

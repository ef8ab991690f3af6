package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/internal/logging"
	"github.com/zero-day-ai/firecheck/server"
)

func newServeCmd() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configPath, addr)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to .firecheck.yaml (default: search from the working directory)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "HTTP listen address (default: from config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath, addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Serve.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	store, err := cfg.Serve.Cache.Open()
	if err != nil {
		logger.Error().Err(err).Str("backend", cfg.Serve.Cache.Backend).Msg("failed to open result cache")
		return &exitCodeError{Code: exitError}
	}
	defer firecheck.CloseWithLog(store, logger, "result cache")

	checker, err := firecheck.New(
		firecheck.WithChecks(cfg.Checks...),
		firecheck.WithWarnings(cfg.Warnings),
		firecheck.WithCache(store),
		firecheck.WithLogger(logging.WithComponent(logger, "checker")),
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create checker")
		return &exitCodeError{Code: exitError}
	}

	srv, err := server.New(checker, server.Config{
		Addr:            cfg.Serve.Addr,
		GRPCHealthAddr:  cfg.Serve.GRPCHealthAddr,
		MaxBodyBytes:    cfg.Serve.MaxBodyBytes,
		ShutdownTimeout: cfg.Serve.GetShutdownTimeout(),
		Cache:           store,
		Logger:          logging.WithComponent(logger, "server"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create server")
		return &exitCodeError{Code: exitError}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Path != "" {
		logger.Info().Str("config", cfg.Path).Msg("loaded configuration")
	}
	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return &exitCodeError{Code: exitError}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nahidmursaline/Real-time-chat-server/internal/app"
	"github.com/nahidmursaline/Real-time-chat-server/internal/config"
	"github.com/nahidmursaline/Real-time-chat-server/internal/log"
)

var (
	flagConfig   string
	flagAddr     string
	flagDB       string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "chat-server",
	Short: "Real-time room-based chat relay",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address")
	rootCmd.Flags().StringVar(&flagDB, "db", "", "path to sqlite database")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, _ []string) error {
	bootstrapLogger := log.New(os.Stdout, "info")

	cfg, configPath, err := config.Load(bootstrapLogger, flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags win over config file and env.
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger := log.New(os.Stdout, cfg.LogLevel)
	logger.Info().Str("config", configPath).Str("addr", cfg.Addr).Msg("starting chat server")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

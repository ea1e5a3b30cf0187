package cmd

import (
	"context"
	"fmt"
	"os"

	"atmlocator/config"
	"atmlocator/logger"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "atmlocator",
		Short: "ATM locations endpoint and map viewer",
	}

	rootCmd.AddCommand(newServeCmd(), newViewCmd(), newSeedCmd(), newHashKeyCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Env), nil
}

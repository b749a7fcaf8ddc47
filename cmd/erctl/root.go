// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/erapp/internal/platform/config"
	pgstore "github.com/taibuivan/erapp/internal/platform/postgres"
	redisstore "github.com/taibuivan/erapp/internal/platform/redis"
)

// commandTimeout bounds a single CLI invocation.
const commandTimeout = 2 * time.Minute

var (
	verbose bool

	logger *slog.Logger
	cfg    *config.ToolConfig
)

var rootCmd = &cobra.Command{
	Use:           "erctl",
	Short:         "Operator tooling for the ERApp backend",
	Long:          `erctl applies database migrations, imports the legal section dataset and provisions administrator accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		loaded, err := config.LoadTool()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openPool connects to PostgreSQL for the duration of one command.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return pool, nil
}

// openRedis connects to Redis when configured. A nil client means cache
// invalidation is skipped.
func openRedis(ctx context.Context) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("redis_unavailable_skipping_cache", slog.Any("error", err))
		return nil
	}
	return client
}

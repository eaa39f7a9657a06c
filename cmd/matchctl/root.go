package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/app"
	"github.com/heartmarshall/tagmatch-backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "matchctl",
	Short:        "matchctl manages the tagmatch database and reviews recommendations",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
	},
}

// env is what every database-backed command needs.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	pool   *pgxpool.Pool
	engine *app.Engine
}

func (e *env) Close() {
	if e.engine != nil {
		e.engine.Close()
	}
	if e.pool != nil {
		e.pool.Close()
	}
}

// loadConfig honours --config, then CONFIG_PATH.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return config.LoadFrom(path)
}

func openEnv(ctx context.Context, withEngine bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: app.NewLogger(cfg.Log)}

	e.pool, err = postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if withEngine {
		e.engine, err = app.NewEngine(ctx, cfg, e.pool, e.log)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status]",
	Short: "Apply or inspect goose migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := "up"
		if len(args) == 1 {
			action = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		m, err := postgres.NewMigrator(ctx, cfg.Database.DSN, migrationsDir)
		if err != nil {
			return err
		}
		defer m.Close()

		switch action {
		case "up":
			results, err := m.Up(ctx)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(out, "applied %d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "no pending migrations")
			}
		case "down":
			r, err := m.Down(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "rolled back %d %s\n", r.Source.Version, r.Source.Path)
		case "status":
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				fmt.Fprintf(out, "%-8s %d %s\n", s.State, s.Source.Version, s.Source.Path)
			}
		default:
			return fmt.Errorf("unknown action %q: want up, down or status", action)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")
}

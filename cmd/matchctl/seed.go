package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagmatch-backend/internal/app"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the tag taxonomy and create profiles from a YAML file",
	Long: `Upserts every tag from the file (display names of existing tags are
updated) and creates the listed profiles. The taxonomy cache is invalidated
afterwards. Tag IDs of each type must be contiguous from 1.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := app.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.engine.Tags.Upsert(ctx, f.Tags())
		if err != nil {
			return fmt.Errorf("upsert tags: %w", err)
		}
		if err := e.engine.InvalidateTaxonomy(ctx); err != nil {
			e.log.WarnContext(ctx, "taxonomy cache not invalidated", slog.String("error", err.Error()))
		}

		for _, p := range f.ProfileList() {
			created, err := e.engine.Profiles.Create(ctx, &p)
			if err != nil {
				return fmt.Errorf("create profile %q: %w", p.DisplayName, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile %d %s %s\n", created.ID, created.Type, created.DisplayName)
		}

		e.log.InfoContext(ctx, "seed completed",
			slog.Int64("tags", n),
			slog.Int("profiles", len(f.Profiles)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file path")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagmatch-backend/internal/service/matching"
)

var (
	deleteIDs    []int64
	deleteStates []string
	matchesRole   string
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect and clean the match ledger",
}

var matchesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete ledger records by party IDs and states",
	Example: `  matchctl matches delete --ids 3,4 --states rejected
  matchctl matches delete --ids 9 --states pending,active --role candidate`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.engine.Matching.DeleteMatches(ctx, matching.DeleteMatchesInput{
			IDs:    deleteIDs,
			States: deleteStates,
			Role:   matchesRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", n)
		return nil
	},
}

var matchesListCmd = &cobra.Command{
	Use:   "list PROFILE_ID",
	Short: "List a profile's pending and active matches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		includeRejected, _ := cmd.Flags().GetBool("include-rejected")

		ctx := cmd.Context()
		e, err := openEnv(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		summaries, err := e.engine.Matching.RetrieveMatches(ctx, matching.RetrieveMatchesInput{
			ProfileID:       id,
			Role:            matchesRole,
			IncludeRejected: includeRejected,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, s := range summaries {
			fmt.Fprintf(out, "%-8s %d %s\n", s.Status, s.CounterpartyID, s.CounterpartyName)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(out, "no matches")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
	matchesCmd.AddCommand(matchesDeleteCmd, matchesListCmd)

	matchesCmd.PersistentFlags().StringVar(&matchesRole, "role", "requester", "which side the IDs refer to: requester or candidate")
	matchesDeleteCmd.Flags().Int64SliceVar(&deleteIDs, "ids", nil, "profile IDs")
	matchesDeleteCmd.Flags().StringSliceVar(&deleteStates, "states", nil, "states to delete: created, pending, active, rejected")
	matchesListCmd.Flags().Bool("include-rejected", false, "include rejected records")
}

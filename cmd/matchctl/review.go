package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"github.com/heartmarshall/tagmatch-backend/internal/service/matching"
)

const (
	choiceApprove = "Approve"
	choiceDecline = "Decline"
	choiceSkip    = "Skip"
	choiceQuit    = "Quit"
)

var reviewRequester int64

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Walk a requester's recommendations and answer them interactively",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if reviewRequester <= 0 {
			return errors.New("--requester is required")
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		svc := e.engine.Matching
		input := matching.RecommendInput{RequesterID: reviewRequester, FirstPage: true}

		for {
			rec, err := svc.Recommend(ctx, input)
			if err != nil {
				return err
			}
			if rec.Candidate == nil {
				fmt.Fprintln(out, rec.Message)
				return nil
			}

			c := rec.Candidate.Profile
			fmt.Fprintf(out, "\n#%d %s  distance=%s\n  trait_a=%v trait_b=%v\n",
				c.ID, c.DisplayName, strconv.FormatFloat(rec.Distance, 'g', 6, 64), c.TraitA, c.TraitB)

			prompt := promptui.Select{
				Label: "Your answer",
				Items: []string{choiceApprove, choiceDecline, choiceSkip, choiceQuit},
			}
			_, choice, err := prompt.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				return err
			}

			switch choice {
			case choiceQuit:
				return nil
			case choiceApprove, choiceDecline:
				res, err := svc.RespondAsRequester(ctx, matching.RespondInput{
					RequesterID: reviewRequester,
					CandidateID: c.ID,
					Response:    choice,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  -> %s\n", strings.ToLower(res.Match.State.String()))
			case choiceSkip:
				// The CREATED record stays, so the candidate is offered again with the next page.
			}

			input = matching.RecommendInput{
				RequesterID: reviewRequester,
				Cursor:      rec.Cursor,
				Remaining:   candidateIDs(rec.Remaining),
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().Int64Var(&reviewRequester, "requester", 0, "requester profile ID")
}

func candidateIDs(cs []domain.Candidate) []int64 {
	ids := make([]int64, len(cs))
	for i, c := range cs {
		ids[i] = c.ID()
	}
	return ids
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid profile id %q", s)
	}
	return id, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vkarev/family-points/internal/application"
	"github.com/vkarev/family-points/internal/domain"
)

func newPointsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "View and change the family points ledger",
	}

	cmd.AddCommand(
		newPointsShowCmd(app),
		newPointsHistoryCmd(app),
		newPointsAddCmd(app),
		newPointsSubtractCmd(app),
		newPointsTransferCmd(app),
	)

	return cmd
}

func newPointsShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every member's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := app.ledger.Balances(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, balancesOutput(app.ledger.Roster(), balances))
			}

			output, err := app.balancesRenderer(app.ledger.Roster(), balances)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print balances as JSON")

	return cmd
}

func newPointsHistoryCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent ledger entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.ledger.History(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, historyOutput(entries, limit))
			}

			output, err := app.historyRenderer(entries, limit)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print history as JSON")
	cmd.Flags().IntVar(&limit, "limit", application.DefaultHistoryLimit, "maximum number of entries to show")

	return cmd
}

func newPointsAddCmd(app *app) *cobra.Command {
	var (
		member   string
		amount   int
		reason   string
		verifier string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add points to a member (requires a verifier)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := app.ledger.Adjust(cmd.Context(),
				domain.Member(member), domain.EntryAdd, amount, reason, domain.Member(verifier))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d points\n", member, balances[domain.Member(member)])
			return err
		},
	}

	addAdjustFlags(cmd, &member, &amount, &reason, &verifier)

	return cmd
}

func newPointsSubtractCmd(app *app) *cobra.Command {
	var (
		member   string
		amount   int
		reason   string
		verifier string
	)

	cmd := &cobra.Command{
		Use:   "subtract",
		Short: "Subtract points from a member (requires a verifier)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.ledger.CheckSufficient(cmd.Context(), domain.Member(member), amount); err != nil {
				return err
			}

			balances, err := app.ledger.Adjust(cmd.Context(),
				domain.Member(member), domain.EntrySubtract, amount, reason, domain.Member(verifier))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d points\n", member, balances[domain.Member(member)])
			return err
		},
	}

	addAdjustFlags(cmd, &member, &amount, &reason, &verifier)

	return cmd
}

func newPointsTransferCmd(app *app) *cobra.Command {
	var (
		from   string
		to     string
		amount int
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move points from one member to another (no verification)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := app.ledger.Transfer(cmd.Context(), domain.Member(from), domain.Member(to), amount)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s transferred %d points to %s (%s: %d, %s: %d)\n",
				from, amount, to,
				from, balances[domain.Member(from)],
				to, balances[domain.Member(to)])
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "member to take points from")
	cmd.Flags().StringVar(&to, "to", "", "member to give points to")
	cmd.Flags().IntVar(&amount, "amount", 0, "number of points to move")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func addAdjustFlags(cmd *cobra.Command, member *string, amount *int, reason, verifier *string) {
	cmd.Flags().StringVar(member, "member", "", "member whose balance changes")
	cmd.Flags().IntVar(amount, "amount", 0, "number of points")
	cmd.Flags().StringVar(reason, "reason", "", "reason for the change")
	cmd.Flags().StringVar(verifier, "verified-by", "", "verifier confirming the change")
	_ = cmd.MarkFlagRequired("member")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("verified-by")
}

type balanceJSON struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type entryJSON struct {
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"`
	Person     string    `json:"person"`
	Amount     int       `json:"amount"`
	Reason     string    `json:"reason,omitempty"`
	VerifiedBy string    `json:"verified_by,omitempty"`
	Target     string    `json:"target,omitempty"`
}

func balancesOutput(roster domain.Roster, balances domain.Balances) []balanceJSON {
	output := make([]balanceJSON, 0, len(roster.Members))
	for _, member := range roster.Members {
		output = append(output, balanceJSON{Name: string(member), Points: balances[member]})
	}
	return output
}

func historyOutput(entries []domain.HistoryEntry, limit int) []entryJSON {
	recent := entries
	if limit > 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	output := make([]entryJSON, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		entry := recent[i]
		output = append(output, entryJSON{
			Timestamp:  entry.Timestamp,
			Kind:       string(entry.Kind),
			Person:     string(entry.Person),
			Amount:     entry.Amount,
			Reason:     entry.Reason,
			VerifiedBy: string(entry.VerifiedBy),
			Target:     string(entry.Target),
		})
	}

	return output
}

func printJSON(cmd *cobra.Command, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}

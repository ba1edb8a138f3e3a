package application

import (
	"fmt"
	"strings"

	"github.com/vkarev/family-points/internal/domain"
)

const DefaultHistoryLimit = 10

const (
	noHistoryMessage    = "No history available yet."
	noReasonPlaceholder = "No reason provided"
	notVerifiedLabel    = "Not verified"
)

const historyTimestampLayout = "2006-01-02 15:04:05"

// FormatBalances renders one line per member in fixed roster order, never
// sorted by value.
func FormatBalances(roster domain.Roster, balances domain.Balances) string {
	var b strings.Builder
	b.WriteString("Family Points\n\n")
	for _, member := range roster.Members {
		fmt.Fprintf(&b, "%s: %d points\n", member, balances[member])
	}

	return b.String()
}

// FormatHistory renders the most recent limit entries, newest first. An empty
// log renders a sentinel message rather than an empty listing.
func FormatHistory(entries []domain.HistoryEntry, limit int) string {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(entries) == 0 {
		return noHistoryMessage
	}

	recent := entries
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	var b strings.Builder
	b.WriteString("Recent Points History\n\n")
	for i := len(recent) - 1; i >= 0; i-- {
		entry := recent[i]
		fmt.Fprintf(&b, "%d. %s\n", len(recent)-i, entry.Timestamp.Format(historyTimestampLayout))

		switch entry.Kind {
		case domain.EntryAdd:
			fmt.Fprintf(&b, "   %s gained %d points\n", entry.Person, entry.Amount)
			writeAdjustDetails(&b, entry)
		case domain.EntrySubtract:
			fmt.Fprintf(&b, "   %s lost %d points\n", entry.Person, entry.Amount)
			writeAdjustDetails(&b, entry)
		case domain.EntryTransfer:
			fmt.Fprintf(&b, "   %s transferred %d points to %s\n", entry.Person, entry.Amount, entry.Target)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeAdjustDetails(b *strings.Builder, entry domain.HistoryEntry) {
	reason := entry.Reason
	if reason == "" {
		reason = noReasonPlaceholder
	}
	verifier := string(entry.VerifiedBy)
	if verifier == "" {
		verifier = notVerifiedLabel
	}
	fmt.Fprintf(b, "   Reason: %s\n   Verified by: %s\n", reason, verifier)
}

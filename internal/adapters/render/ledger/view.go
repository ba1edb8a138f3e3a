package ledger

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vkarev/family-points/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

func renderBalancesView(roster domain.Roster, balances domain.Balances, s styles) string {
	lines := []string{
		s.title.Render("Family Points"),
		s.header.Render(fmt.Sprintf("members: %d", len(roster.Members))),
	}

	for _, member := range roster.Members {
		lines = append(lines, balanceLine(member, balances[member], s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func balanceLine(member domain.Member, points int, s styles) string {
	pointsStyle := s.points
	if points < 0 {
		pointsStyle = s.negative
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.member.Render(string(member)),
		" ",
		pointsStyle.Render(fmt.Sprintf("%d points", points)),
	)
}

func renderHistoryView(entries []domain.HistoryEntry, limit int, s styles) string {
	lines := []string{
		s.title.Render("Recent Points History"),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No history available yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	recent := entries
	if limit > 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}
	lines = append(lines, s.header.Render(fmt.Sprintf("entries: %d", len(recent))))

	// Newest first.
	for i := len(recent) - 1; i >= 0; i-- {
		lines = append(lines, s.section.Render(renderEntry(recent[i], s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntry(entry domain.HistoryEntry, s styles) string {
	parts := []string{
		s.meta.Render(entry.Timestamp.Format(timestampLayout)),
	}

	switch entry.Kind {
	case domain.EntryAdd:
		parts = append(parts, headline(entry.Person, fmt.Sprintf("gained %d points", entry.Amount), s))
		parts = append(parts, adjustDetails(entry, s)...)
	case domain.EntrySubtract:
		parts = append(parts, headline(entry.Person, fmt.Sprintf("lost %d points", entry.Amount), s))
		parts = append(parts, adjustDetails(entry, s)...)
	case domain.EntryTransfer:
		parts = append(parts, headline(entry.Person, fmt.Sprintf("transferred %d points to %s", entry.Amount, entry.Target), s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func headline(person domain.Member, rest string, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.member.Render(string(person)),
		" ",
		s.points.Render(rest),
	)
}

func adjustDetails(entry domain.HistoryEntry, s styles) []string {
	reason := entry.Reason
	if reason == "" {
		reason = "No reason provided"
	}
	verifier := string(entry.VerifiedBy)
	if verifier == "" {
		verifier = "Not verified"
	}

	return []string{
		s.detail.Render(fmt.Sprintf("reason: %s", reason)),
		s.detail.Render(fmt.Sprintf("verified by: %s", verifier)),
	}
}

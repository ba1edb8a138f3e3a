package application

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkarev/family-points/internal/domain"
)

func TestFormatBalancesKeepsRosterOrder(t *testing.T) {
	roster := domain.DefaultRoster()
	balances := domain.Balances{"Tima": 30, "Vlad": 100, "Danya": -4, "Mama": 0, "Papa": 1}

	output := FormatBalances(roster, balances)

	assert.Contains(t, output, "Tima: 30 points")
	assert.Contains(t, output, "Danya: -4 points")

	// Fixed roster order, not sorted by value.
	timaIdx := strings.Index(output, "Tima")
	vladIdx := strings.Index(output, "Vlad")
	papaIdx := strings.Index(output, "Papa")
	assert.Less(t, timaIdx, vladIdx)
	assert.Less(t, vladIdx, papaIdx)
}

func TestFormatHistoryEmptyLogUsesSentinel(t *testing.T) {
	assert.Equal(t, "No history available yet.", FormatHistory(nil, 10))
}

func TestFormatHistoryLimitsAndOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := make([]domain.HistoryEntry, 0, 15)
	for i := 0; i < 15; i++ {
		entries = append(entries, domain.HistoryEntry{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Kind:       domain.EntryAdd,
			Person:     "Tima",
			Amount:     i + 1,
			Reason:     fmt.Sprintf("reason %d", i),
			VerifiedBy: "Mama",
		})
	}

	output := FormatHistory(entries, 10)

	// Exactly the last 10 entries of the append-ordered log.
	assert.NotContains(t, output, "reason 4")
	assert.Contains(t, output, "reason 5")
	assert.Contains(t, output, "reason 14")

	// Newest first: the latest entry is item 1.
	require.Contains(t, output, "1. ")
	assert.Less(t, strings.Index(output, "reason 14"), strings.Index(output, "reason 13"))
	assert.Less(t, strings.Index(output, "reason 13"), strings.Index(output, "reason 5"))
}

func TestFormatHistoryRendersEachKind(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{Timestamp: now, Kind: domain.EntryAdd, Person: "Tima", Amount: 50, Reason: "chores", VerifiedBy: "Mama"},
		{Timestamp: now, Kind: domain.EntrySubtract, Person: "Vlad", Amount: 10, Reason: "late", VerifiedBy: "Papa"},
		{Timestamp: now, Kind: domain.EntryTransfer, Person: "Tima", Amount: 20, Target: "Vlad"},
	}

	output := FormatHistory(entries, 10)

	assert.Contains(t, output, "Tima gained 50 points")
	assert.Contains(t, output, "Reason: chores")
	assert.Contains(t, output, "Verified by: Mama")
	assert.Contains(t, output, "Vlad lost 10 points")
	assert.Contains(t, output, "Tima transferred 20 points to Vlad")
	assert.Contains(t, output, "2026-03-01 09:30:15")
}

func TestFormatHistoryPlaceholders(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{Timestamp: now, Kind: domain.EntryAdd, Person: "Tima", Amount: 5},
	}

	output := FormatHistory(entries, 10)

	assert.Contains(t, output, "No reason provided")
	assert.Contains(t, output, "Not verified")
}

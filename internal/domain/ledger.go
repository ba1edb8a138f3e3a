package domain

import (
	"fmt"
	"time"
)

// Balances maps each roster member to an integer point balance. Balances may
// go negative; no floor is enforced anywhere.
type Balances map[Member]int

func (b Balances) Clone() Balances {
	clone := make(Balances, len(b))
	for member, points := range b {
		clone[member] = points
	}
	return clone
}

// ZeroBalances returns the bootstrap mapping with every roster member at zero.
func ZeroBalances(roster Roster) Balances {
	balances := make(Balances, len(roster.Members))
	for _, member := range roster.Members {
		balances[member] = 0
	}
	return balances
}

type EntryKind string

const (
	EntryAdd      EntryKind = "add"
	EntrySubtract EntryKind = "subtract"
	EntryTransfer EntryKind = "transfer"
)

// HistoryEntry is one append-only audit record. Entries are never edited or
// removed after append; the log is ordered by append time.
type HistoryEntry struct {
	Timestamp time.Time
	Kind      EntryKind
	Person    Member
	Amount    int
	// Reason and VerifiedBy are set for add/subtract entries only.
	Reason     string
	VerifiedBy Member
	// Target is set for transfer entries only.
	Target Member
}

func (e HistoryEntry) Validate() error {
	if e.Person == "" {
		return fmt.Errorf("person is required")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", e.Amount)
	}
	switch e.Kind {
	case EntryAdd, EntrySubtract:
		if e.VerifiedBy == "" {
			return fmt.Errorf("%s entry requires a verifier", e.Kind)
		}
		if e.Target != "" {
			return fmt.Errorf("%s entry must not carry a target", e.Kind)
		}
	case EntryTransfer:
		if e.Target == "" {
			return fmt.Errorf("transfer entry requires a target")
		}
		if e.Target == e.Person {
			return fmt.Errorf("transfer target must differ from person")
		}
		if e.VerifiedBy != "" {
			return fmt.Errorf("transfer entry must not carry a verifier")
		}
	default:
		return fmt.Errorf("unknown entry kind %q", e.Kind)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/vkarev/family-points/internal/domain"
)

// LedgerRepository is the durable store for balances and the append-only
// history log. Load methods bootstrap missing data with defaults and persist
// them; data that exists but cannot be decoded surfaces as an error wrapping
// domain.ErrLedgerCorrupt.
type LedgerRepository interface {
	LoadBalances(ctx context.Context) (domain.Balances, error)
	SaveBalances(ctx context.Context, balances domain.Balances) error
	LoadHistory(ctx context.Context) ([]domain.HistoryEntry, error)
	AppendHistory(ctx context.Context, entry domain.HistoryEntry) error
}

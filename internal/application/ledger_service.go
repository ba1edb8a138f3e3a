package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vkarev/family-points/internal/domain"
	"github.com/vkarev/family-points/internal/ports"
)

// LedgerService runs every balance mutation as a load-mutate-save plus one
// history append, serialized by a single mutex so concurrent sessions in this
// process cannot clobber each other's commits. Writers in other processes are
// not serialized; the repository's whole-file replace keeps readers consistent.
type LedgerService struct {
	repo   ports.LedgerRepository
	roster domain.Roster
	clock  ports.Clock

	mu sync.Mutex
}

func NewLedgerService(repo ports.LedgerRepository, roster domain.Roster, clock ports.Clock) *LedgerService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &LedgerService{repo: repo, roster: roster, clock: clock}
}

func (s *LedgerService) Roster() domain.Roster {
	return s.roster
}

func (s *LedgerService) Balances(ctx context.Context) (domain.Balances, error) {
	balances, err := s.repo.LoadBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}

	return balances, nil
}

func (s *LedgerService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	return entries, nil
}

// CheckSufficient reloads balances and reports whether member can part with
// amount right now. Used by the amount step for subtracts and by the
// non-interactive subtract command; the verified commit itself does not
// re-check.
func (s *LedgerService) CheckSufficient(ctx context.Context, member domain.Member, amount int) error {
	balances, err := s.Balances(ctx)
	if err != nil {
		return err
	}

	if balances[member] < amount {
		return &domain.InsufficientBalanceError{Member: member, Balance: balances[member], Amount: amount}
	}

	return nil
}

// Adjust commits a verified add or subtract: person's balance moves by
// ±amount and exactly one history entry carrying reason and verifier is
// appended. Add has no ceiling and subtract is not balance-checked here; the
// sufficiency check happens at the amount step against live balances.
func (s *LedgerService) Adjust(ctx context.Context, person domain.Member, kind domain.EntryKind, amount int, reason string, verifier domain.Member) (domain.Balances, error) {
	if kind != domain.EntryAdd && kind != domain.EntrySubtract {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("cannot adjust with a %s operation", kind)}
	}
	if err := s.checkMember(person); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, &domain.ValidationError{Message: "amount must be a positive number"}
	}
	if !s.roster.IsVerifier(verifier) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("%s cannot verify operations", verifier)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.repo.LoadBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}

	balances = balances.Clone()
	if kind == domain.EntryAdd {
		balances[person] += amount
	} else {
		balances[person] -= amount
	}

	if err := s.repo.SaveBalances(ctx, balances); err != nil {
		return nil, fmt.Errorf("save balances: %w", err)
	}

	entry := domain.HistoryEntry{
		Timestamp:  s.now(),
		Kind:       kind,
		Person:     person,
		Amount:     amount,
		Reason:     reason,
		VerifiedBy: verifier,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	return balances, nil
}

// Transfer commits immediately: amount moves from one member to the other in
// a single balances save, and one transfer entry is appended. Transfers are
// self-authorizing, so no verifier is involved.
func (s *LedgerService) Transfer(ctx context.Context, from, to domain.Member, amount int) (domain.Balances, error) {
	if err := s.checkMember(from); err != nil {
		return nil, err
	}
	if err := s.checkMember(to); err != nil {
		return nil, err
	}
	if from == to {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("%s cannot transfer points to themselves", from)}
	}
	if amount <= 0 {
		return nil, &domain.ValidationError{Message: "amount must be a positive number"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.repo.LoadBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}

	if balances[from] < amount {
		return nil, &domain.InsufficientBalanceError{Member: from, Balance: balances[from], Amount: amount}
	}

	balances = balances.Clone()
	balances[from] -= amount
	balances[to] += amount

	if err := s.repo.SaveBalances(ctx, balances); err != nil {
		return nil, fmt.Errorf("save balances: %w", err)
	}

	entry := domain.HistoryEntry{
		Timestamp: s.now(),
		Kind:      domain.EntryTransfer,
		Person:    from,
		Amount:    amount,
		Target:    to,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	return balances, nil
}

func (s *LedgerService) checkMember(member domain.Member) error {
	if !s.roster.Contains(member) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMember, member)
	}
	return nil
}

func (s *LedgerService) now() time.Time {
	return s.clock.Now().Truncate(time.Second)
}

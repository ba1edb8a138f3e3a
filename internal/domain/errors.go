package domain

import (
	"errors"
	"fmt"
)

// ErrLedgerCorrupt marks persisted ledger data that exists but cannot be
// decoded. It must never be masked as "no data": doing so would silently wipe
// prior balances and history on the next save.
var ErrLedgerCorrupt = errors.New("ledger data is corrupt")

var ErrUnknownMember = errors.New("unknown family member")

// ValidationError is a recoverable user-input failure. The conversation
// re-prompts the same state with Message; it never aborts the session.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientBalanceError names the live balance so re-prompts can report the
// actual shortfall.
type InsufficientBalanceError struct {
	Member  Member
	Balance int
	Amount  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s only has %d points, cannot move %d", e.Member, e.Balance, e.Amount)
}

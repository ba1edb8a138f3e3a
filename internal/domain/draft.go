package domain

// Draft is the in-progress, not-yet-committed operation a session accumulates
// across turns. It is discarded on cancel, cleared on a successful commit, and
// kept intact when a commit fails on storage so the user can retry.
type Draft struct {
	Person Member
	Kind   EntryKind
	Reason string
	Amount int
	Target Member
}

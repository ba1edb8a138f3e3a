package domain

import (
	"fmt"
	"strings"
)

type Member string

// Roster is the fixed, ordered set of family members plus the two members
// whose confirmation gates add/subtract commits. It never changes after wiring.
type Roster struct {
	Members   []Member
	Verifiers []Member
}

func DefaultRoster() Roster {
	return Roster{
		Members:   []Member{"Tima", "Vlad", "Danya", "Mama", "Papa"},
		Verifiers: []Member{"Mama", "Papa"},
	}
}

func (r Roster) Validate() error {
	if len(r.Members) == 0 {
		return fmt.Errorf("at least one member is required")
	}
	if len(r.Verifiers) == 0 {
		return fmt.Errorf("at least one verifier is required")
	}
	seen := make(map[Member]struct{}, len(r.Members))
	for _, member := range r.Members {
		if strings.TrimSpace(string(member)) == "" {
			return fmt.Errorf("member name must not be blank")
		}
		if _, ok := seen[member]; ok {
			return fmt.Errorf("duplicate member %q", member)
		}
		seen[member] = struct{}{}
	}
	for _, verifier := range r.Verifiers {
		if !r.Contains(verifier) {
			return fmt.Errorf("verifier %q is not a roster member", verifier)
		}
	}
	return nil
}

func (r Roster) Contains(member Member) bool {
	for _, candidate := range r.Members {
		if candidate == member {
			return true
		}
	}
	return false
}

func (r Roster) IsVerifier(member Member) bool {
	for _, verifier := range r.Verifiers {
		if verifier == member {
			return true
		}
	}
	return false
}

// TransferTargets returns the roster members excluding from, in roster order.
func (r Roster) TransferTargets(from Member) []Member {
	targets := make([]Member, 0, len(r.Members)-1)
	for _, member := range r.Members {
		if member != from {
			targets = append(targets, member)
		}
	}
	return targets
}

package toml

import "fmt"

const currentSchemaVersion = 1

type balancesFileSchema struct {
	Version int             `toml:"version"`
	Members []balanceSchema `toml:"members"`
}

type balanceSchema struct {
	Name   string `toml:"name"`
	Points int    `toml:"points"`
}

func (s *balancesFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s balancesFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported balances schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type historyFileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

type entrySchema struct {
	Timestamp  string `toml:"timestamp"`
	Kind       string `toml:"kind"`
	Person     string `toml:"person"`
	Amount     int    `toml:"amount"`
	Reason     string `toml:"reason,omitempty"`
	VerifiedBy string `toml:"verified_by,omitempty"`
	Target     string `toml:"target,omitempty"`
}

func (s *historyFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s historyFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

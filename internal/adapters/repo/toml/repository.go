package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/vkarev/family-points/internal/domain"
	"github.com/vkarev/family-points/internal/ports"
)

const (
	configName       = "config"
	configType       = "toml"
	balancesPathKey  = "ledger.balances_path"
	historyPathKey   = "ledger.history_path"
	ledgerFileMode   = 0o600
	ledgerDirMode    = 0o700
	ledgerConfigDir  = ".family-points"
	balancesFileName = "balances.toml"
	historyFileName  = "history.toml"
	tempFilePattern  = ".ledger-*.toml.tmp"

	timestampLayout = time.RFC3339
)

// Repository persists balances and history as two TOML files. Loads bootstrap
// missing files with defaults; files that exist but fail to decode surface as
// errors wrapping domain.ErrLedgerCorrupt.
type Repository struct {
	roster       domain.Roster
	balancesPath string
	historyPath  string
	balancesMu   *sync.RWMutex
	historyMu    *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.LedgerRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, roster domain.Roster) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if err := roster.Validate(); err != nil {
		return nil, fmt.Errorf("validate roster: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ledgerConfigDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(balancesPathKey, filepath.Join(configDir, balancesFileName))
	cfg.SetDefault(historyPathKey, filepath.Join(configDir, historyFileName))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	balancesPath, err := normalizeLedgerPath(cfg.GetString(balancesPathKey))
	if err != nil {
		return nil, err
	}
	historyPath, err := normalizeLedgerPath(cfg.GetString(historyPathKey))
	if err != nil {
		return nil, err
	}

	return &Repository{
		roster:       roster,
		balancesPath: balancesPath,
		historyPath:  historyPath,
		balancesMu:   lockForPath(balancesPath),
		historyMu:    lockForPath(historyPath),
	}, nil
}

// LoadBalances takes the write lock because a first load persists the default
// mapping with every roster member at zero.
func (r *Repository) LoadBalances(ctx context.Context) (domain.Balances, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.balancesMu.Lock()
	defer r.balancesMu.Unlock()

	file, exists, err := r.readBalancesSchema()
	if err != nil {
		return nil, err
	}

	if !exists {
		defaults := domain.ZeroBalances(r.roster)
		if err := r.writeBalancesSchema(toBalancesSchema(r.roster, defaults)); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	balances := make(domain.Balances, len(file.Members))
	for _, member := range file.Members {
		balances[domain.Member(member.Name)] = member.Points
	}
	// A known member is never missing from the returned mapping.
	for _, member := range r.roster.Members {
		if _, ok := balances[member]; !ok {
			balances[member] = 0
		}
	}

	return balances, nil
}

func (r *Repository) SaveBalances(ctx context.Context, balances domain.Balances) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.balancesMu.Lock()
	defer r.balancesMu.Unlock()

	return r.writeBalancesSchema(toBalancesSchema(r.roster, balances))
}

func (r *Repository) LoadHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.historyMu.Lock()
	defer r.historyMu.Unlock()

	return r.loadHistoryLocked()
}

// AppendHistory loads the current sequence, appends entry, and persists the
// whole sequence back under the history lock.
func (r *Repository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validate history entry: %w", err)
	}

	r.historyMu.Lock()
	defer r.historyMu.Unlock()

	entries, err := r.loadHistoryLocked()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	return r.writeHistorySchema(toHistorySchema(entries))
}

func (r *Repository) loadHistoryLocked() ([]domain.HistoryEntry, error) {
	file, exists, err := r.readHistorySchema()
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := r.writeHistorySchema(toHistorySchema(nil)); err != nil {
			return nil, err
		}
		return []domain.HistoryEntry{}, nil
	}

	entries := make([]domain.HistoryEntry, 0, len(file.Entries))
	for _, raw := range file.Entries {
		entry, err := fromEntrySchema(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrLedgerCorrupt, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *Repository) readBalancesSchema() (balancesFileSchema, bool, error) {
	data, err := os.ReadFile(r.balancesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return balancesFileSchema{}, false, nil
		}
		return balancesFileSchema{}, false, fmt.Errorf("read balances file: %w", err)
	}

	var file balancesFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return balancesFileSchema{}, false, fmt.Errorf("%w: decode balances file: %s", domain.ErrLedgerCorrupt, err)
	}
	if err := file.validateVersion(); err != nil {
		return balancesFileSchema{}, false, fmt.Errorf("%w: %s", domain.ErrLedgerCorrupt, err)
	}
	file.applyDefaults()

	return file, true, nil
}

func (r *Repository) readHistorySchema() (historyFileSchema, bool, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return historyFileSchema{}, false, nil
		}
		return historyFileSchema{}, false, fmt.Errorf("read history file: %w", err)
	}

	var file historyFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return historyFileSchema{}, false, fmt.Errorf("%w: decode history file: %s", domain.ErrLedgerCorrupt, err)
	}
	if err := file.validateVersion(); err != nil {
		return historyFileSchema{}, false, fmt.Errorf("%w: %s", domain.ErrLedgerCorrupt, err)
	}
	file.applyDefaults()

	return file, true, nil
}

func (r *Repository) writeBalancesSchema(file balancesFileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode balances file: %w", err)
	}

	return atomicWrite(r.balancesPath, data)
}

func (r *Repository) writeHistorySchema(file historyFileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	return atomicWrite(r.historyPath, data)
}

func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}

	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, ledgerFileMode); err != nil {
		return fmt.Errorf("chmod ledger file: %w", err)
	}

	return nil
}

// toBalancesSchema writes roster members first in roster order so the durable
// form keeps the fixed display order; members no longer on the roster are kept
// after them, sorted by name.
func toBalancesSchema(roster domain.Roster, balances domain.Balances) balancesFileSchema {
	file := balancesFileSchema{Version: currentSchemaVersion}

	written := make(map[domain.Member]struct{}, len(roster.Members))
	for _, member := range roster.Members {
		points, ok := balances[member]
		if !ok {
			points = 0
		}
		file.Members = append(file.Members, balanceSchema{Name: string(member), Points: points})
		written[member] = struct{}{}
	}

	var extras []domain.Member
	for member := range balances {
		if _, ok := written[member]; !ok {
			extras = append(extras, member)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	for _, member := range extras {
		file.Members = append(file.Members, balanceSchema{Name: string(member), Points: balances[member]})
	}

	return file
}

func toHistorySchema(entries []domain.HistoryEntry) historyFileSchema {
	file := historyFileSchema{Version: currentSchemaVersion}

	for _, entry := range entries {
		file.Entries = append(file.Entries, entrySchema{
			Timestamp:  entry.Timestamp.Format(timestampLayout),
			Kind:       string(entry.Kind),
			Person:     string(entry.Person),
			Amount:     entry.Amount,
			Reason:     entry.Reason,
			VerifiedBy: string(entry.VerifiedBy),
			Target:     string(entry.Target),
		})
	}

	return file
}

func fromEntrySchema(raw entrySchema) (domain.HistoryEntry, error) {
	timestamp, err := time.Parse(timestampLayout, raw.Timestamp)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("parse entry timestamp %q: %s", raw.Timestamp, err)
	}

	kind := domain.EntryKind(raw.Kind)
	switch kind {
	case domain.EntryAdd, domain.EntrySubtract, domain.EntryTransfer:
	default:
		return domain.HistoryEntry{}, fmt.Errorf("unknown entry kind %q", raw.Kind)
	}

	return domain.HistoryEntry{
		Timestamp:  timestamp,
		Kind:       kind,
		Person:     domain.Member(raw.Person),
		Amount:     raw.Amount,
		Reason:     raw.Reason,
		VerifiedBy: domain.Member(raw.VerifiedBy),
		Target:     domain.Member(raw.Target),
	}, nil
}

func normalizeLedgerPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("ledger path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

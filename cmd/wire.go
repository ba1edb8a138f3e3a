package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	renderledger "github.com/vkarev/family-points/internal/adapters/render/ledger"
	tomlrepo "github.com/vkarev/family-points/internal/adapters/repo/toml"
	"github.com/vkarev/family-points/internal/application"
	"github.com/vkarev/family-points/internal/domain"
	"github.com/vkarev/family-points/internal/ports"
)

const (
	configDirName      = ".family-points"
	membersConfigKey   = "family.members"
	verifiersConfigKey = "family.verifiers"
)

type app struct {
	ledger           *application.LedgerService
	conversation     *application.Conversation
	balancesRenderer func(domain.Roster, domain.Balances) (string, error)
	historyRenderer  func([]domain.HistoryEntry, int) (string, error)
}

func wireApp() (*app, error) {
	cfg := viper.New()

	roster, err := loadRoster(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire roster: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg, roster)
	if err != nil {
		return nil, fmt.Errorf("wire ledger repository: %w", err)
	}

	ledger := application.NewLedgerService(repo, roster, ports.SystemClock{})

	return newApp(ledger), nil
}

func newApp(ledger *application.LedgerService) *app {
	return &app{
		ledger:           ledger,
		conversation:     application.NewConversation(ledger),
		balancesRenderer: renderledger.RenderBalances,
		historyRenderer:  renderledger.RenderHistory,
	}
}

// loadRoster reads the fixed member set from the config file, defaulting to
// the standard five-member family. The roster never changes after wiring.
func loadRoster(cfg *viper.Viper) (domain.Roster, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return domain.Roster{}, fmt.Errorf("resolve home directory: %w", err)
	}

	defaults := domain.DefaultRoster()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(membersConfigKey, memberNames(defaults.Members))
	cfg.SetDefault(verifiersConfigKey, memberNames(defaults.Verifiers))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return domain.Roster{}, fmt.Errorf("read config file: %w", err)
		}
	}

	roster := domain.Roster{
		Members:   toMembers(cfg.GetStringSlice(membersConfigKey)),
		Verifiers: toMembers(cfg.GetStringSlice(verifiersConfigKey)),
	}
	if err := roster.Validate(); err != nil {
		return domain.Roster{}, err
	}

	return roster, nil
}

func memberNames(members []domain.Member) []string {
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, string(member))
	}
	return names
}

func toMembers(names []string) []domain.Member {
	members := make([]domain.Member, 0, len(names))
	for _, name := range names {
		members = append(members, domain.Member(name))
	}
	return members
}

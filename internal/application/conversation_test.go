package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tomlrepo "github.com/vkarev/family-points/internal/adapters/repo/toml"
	"github.com/vkarev/family-points/internal/domain"
	"github.com/vkarev/family-points/internal/ports/mocks"
)

func newConversationFixture(t *testing.T) (*Conversation, *LedgerService) {
	t.Helper()

	dir := t.TempDir()
	config := viper.New()
	config.Set("ledger.balances_path", filepath.Join(dir, "balances.toml"))
	config.Set("ledger.history_path", filepath.Join(dir, "history.toml"))

	repo, err := tomlrepo.NewRepository(config, domain.DefaultRoster())
	require.NoError(t, err)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(fixedNow()).Maybe()

	ledger := NewLedgerService(repo, domain.DefaultRoster(), clock)
	return NewConversation(ledger), ledger
}

func mustStep(t *testing.T, c *Conversation, session Session, action Action) (Session, View) {
	t.Helper()

	next, view, err := c.Step(context.Background(), session, action)
	require.NoError(t, err)
	return next, view
}

func pickChoice(t *testing.T, view View, id ChoiceID) Action {
	t.Helper()

	for _, choice := range view.Choices {
		if choice.ID == id {
			return PickAction(choice)
		}
	}
	t.Fatalf("view offers no choice %q", id)
	return Action{}
}

func pickMember(t *testing.T, view View, id ChoiceID, member domain.Member) Action {
	t.Helper()

	for _, choice := range view.Choices {
		if choice.ID == id && choice.Member == member {
			return PickAction(choice)
		}
	}
	t.Fatalf("view offers no choice %q for member %q", id, member)
	return Action{}
}

// Drives a session from the main menu to the amount prompt for person/kind.
func driveToAmount(t *testing.T, c *Conversation, person domain.Member, operation ChoiceID) (Session, View) {
	t.Helper()

	session := NewSession()
	session, view := mustStep(t, c, session, Action{Kind: ActionPick, Choice: Choice{ID: ChoiceManagePoints}})
	require.Equal(t, StateSelectPerson, session.State)

	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceSelectPerson, person))
	require.Equal(t, StateSelectOperation, session.State)

	session, view = mustStep(t, c, session, pickChoice(t, view, operation))
	return session, view
}

func TestStartOpensMainMenuWithWelcome(t *testing.T) {
	c, _ := newConversationFixture(t)

	session, view, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateMainMenu, session.State)
	assert.Contains(t, view.Text, "Welcome to the Family Points Bot")
	assert.Contains(t, view.Text, "Tima, Vlad, Danya, Mama, Papa")
	require.Len(t, view.Choices, 2)
}

func TestVerifiedAddThenTransferScenario(t *testing.T) {
	c, ledger := newConversationFixture(t)

	// Tima Add 50, reason "chores", verified by Mama.
	session, view := driveToAmount(t, c, "Tima", ChoiceOperationAdd)
	require.Equal(t, StateAddReason, session.State)
	require.True(t, view.FreeText)

	session, view = mustStep(t, c, session, TextAction("chores"))
	require.Equal(t, StateAddAmount, session.State)
	require.True(t, view.FreeText)

	session, view = mustStep(t, c, session, TextAction("50"))
	require.Equal(t, StateVerifyOperation, session.State)
	assert.Contains(t, view.Text, "Mama or Papa")

	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceVerify, "Mama"))
	assert.Equal(t, StateMainMenu, session.State)
	assert.Equal(t, domain.Draft{}, session.Draft)
	assert.Contains(t, view.Text, "verified by Mama")
	assert.Contains(t, view.Text, "Tima now has 50 points")

	balances, err := ledger.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Balances{"Tima": 50, "Vlad": 0, "Danya": 0, "Mama": 0, "Papa": 0}, balances)

	entries, err := ledger.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EntryAdd, entries[0].Kind)
	assert.Equal(t, domain.Member("Tima"), entries[0].Person)
	assert.Equal(t, 50, entries[0].Amount)
	assert.Equal(t, "chores", entries[0].Reason)
	assert.Equal(t, domain.Member("Mama"), entries[0].VerifiedBy)

	// Tima Transfer 20 to Vlad: commits immediately, no verification prompt.
	session, view = mustStep(t, c, NewSession(), Action{Kind: ActionPick, Choice: Choice{ID: ChoiceManagePoints}})
	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceSelectPerson, "Tima"))
	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceOperationTransfer))
	require.Equal(t, StateSelectTransferTarget, session.State)

	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceTransferTarget, "Vlad"))
	require.Equal(t, StateAddAmount, session.State)

	session, view = mustStep(t, c, session, TextAction("20"))
	assert.Equal(t, StateMainMenu, session.State)
	assert.Contains(t, view.Text, "Transfer complete!")
	assert.Contains(t, view.Text, "Tima: 30 points")
	assert.Contains(t, view.Text, "Vlad: 20 points")

	balances, err = ledger.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, balances["Tima"])
	assert.Equal(t, 20, balances["Vlad"])

	entries, err = ledger.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryTransfer, entries[1].Kind)
	assert.Equal(t, domain.Member("Tima"), entries[1].Person)
	assert.Equal(t, domain.Member("Vlad"), entries[1].Target)
	assert.Equal(t, 20, entries[1].Amount)
	assert.Empty(t, entries[1].VerifiedBy)
}

func TestCancelAtVerifyLeavesLedgerUnchanged(t *testing.T) {
	c, ledger := newConversationFixture(t)

	session, _ := driveToAmount(t, c, "Tima", ChoiceOperationAdd)
	session, _ = mustStep(t, c, session, TextAction("chores"))
	session, view := mustStep(t, c, session, TextAction("50"))
	require.Equal(t, StateVerifyOperation, session.State)

	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceCancelOperation))
	assert.Equal(t, StateMainMenu, session.State)
	assert.Equal(t, domain.Draft{}, session.Draft)
	assert.Equal(t, "Operation cancelled.", view.Notice)

	balances, err := ledger.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroBalances(domain.DefaultRoster()), balances)

	entries, err := ledger.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInvalidAmountInputsReprompt(t *testing.T) {
	for _, input := range []string{"abc", "0", "-5", "1.5"} {
		t.Run(input, func(t *testing.T) {
			c, ledger := newConversationFixture(t)

			session, _ := driveToAmount(t, c, "Tima", ChoiceOperationAdd)
			session, _ = mustStep(t, c, session, TextAction("chores"))

			session, view := mustStep(t, c, session, TextAction(input))
			assert.Equal(t, StateAddAmount, session.State)
			assert.NotEmpty(t, view.Notice)
			assert.True(t, view.FreeText)

			balances, err := ledger.Balances(context.Background())
			require.NoError(t, err)
			assert.Equal(t, domain.ZeroBalances(domain.DefaultRoster()), balances)

			entries, err := ledger.History(context.Background())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSubtractInsufficientBalanceNamesCurrentBalance(t *testing.T) {
	c, ledger := newConversationFixture(t)

	_, err := ledger.Adjust(context.Background(), "Tima", domain.EntryAdd, 5, "start", "Mama")
	require.NoError(t, err)

	session, _ := driveToAmount(t, c, "Tima", ChoiceOperationSubtract)
	session, _ = mustStep(t, c, session, TextAction("late"))

	session, view := mustStep(t, c, session, TextAction("20"))
	assert.Equal(t, StateAddAmount, session.State)
	assert.Contains(t, view.Notice, "only has 5 points")

	balances, err := ledger.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, balances["Tima"])

	entries, err := ledger.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTransferInsufficientBalanceReprompts(t *testing.T) {
	c, ledger := newConversationFixture(t)

	session, view := driveToAmount(t, c, "Tima", ChoiceOperationTransfer)
	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceTransferTarget, "Vlad"))

	session, view = mustStep(t, c, session, TextAction("20"))
	assert.Equal(t, StateAddAmount, session.State)
	assert.Contains(t, view.Notice, "only has 0 points")

	entries, err := ledger.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTransferTargetListExcludesSource(t *testing.T) {
	c, _ := newConversationFixture(t)

	_, view := driveToAmount(t, c, "Tima", ChoiceOperationTransfer)
	for _, choice := range view.Choices {
		assert.NotEqual(t, domain.Member("Tima"), choice.Member)
	}
}

func TestForgedSelfTransferTargetReprompts(t *testing.T) {
	c, _ := newConversationFixture(t)

	session, _ := driveToAmount(t, c, "Tima", ChoiceOperationTransfer)

	// A pick the view never offered: transfer to self.
	forged := PickAction(Choice{ID: ChoiceTransferTarget, Label: "Tima", Member: "Tima"})
	session, view := mustStep(t, c, session, forged)
	assert.Equal(t, StateSelectTransferTarget, session.State)
	assert.Contains(t, view.Notice, "cannot transfer points to themselves")
}

func TestGlobalCancelDiscardsDraftFromAnyState(t *testing.T) {
	c, _ := newConversationFixture(t)

	session, _ := driveToAmount(t, c, "Tima", ChoiceOperationAdd)
	session, _ = mustStep(t, c, session, TextAction("chores"))
	require.Equal(t, StateAddAmount, session.State)
	require.NotZero(t, session.Draft.Person)

	session, view := mustStep(t, c, session, CancelAction())
	assert.Equal(t, StateMainMenu, session.State)
	assert.Equal(t, domain.Draft{}, session.Draft)
	assert.Equal(t, "Operation cancelled.", view.Notice)
}

func TestUnknownActionReRendersCurrentPrompt(t *testing.T) {
	c, _ := newConversationFixture(t)

	session := NewSession()

	// Free text where a pick is expected.
	next, view := mustStep(t, c, session, TextAction("hello"))
	assert.Equal(t, StateMainMenu, next.State)
	assert.Equal(t, "Please select an option:", view.Text)

	// A pick that matches no transition for the state.
	next, view = mustStep(t, c, session, PickAction(Choice{ID: ChoiceBackToPoints}))
	assert.Equal(t, StateMainMenu, next.State)
	assert.Equal(t, "Please select an option:", view.Text)
}

func TestBackNavigation(t *testing.T) {
	c, _ := newConversationFixture(t)

	// Main -> SelectPerson -> SelectOperation -> back -> SelectPerson.
	session, view := mustStep(t, c, NewSession(), Action{Kind: ActionPick, Choice: Choice{ID: ChoiceManagePoints}})
	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceSelectPerson, "Vlad"))
	require.Equal(t, StateSelectOperation, session.State)

	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceBack))
	assert.Equal(t, StateSelectPerson, session.State)
	// Re-selection restarts the draft, nothing stays bound.
	assert.Equal(t, domain.Draft{}, session.Draft)

	// Transfer target back keeps the selected person.
	session, view = mustStep(t, c, session, pickMember(t, view, ChoiceSelectPerson, "Vlad"))
	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceOperationTransfer))
	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceBack))
	assert.Equal(t, StateSelectOperation, session.State)
	assert.Equal(t, domain.Member("Vlad"), session.Draft.Person)
	assert.Contains(t, view.Text, "Hello, Vlad!")
}

func TestViewPointsShowsLiveBalances(t *testing.T) {
	c, ledger := newConversationFixture(t)

	session, view := mustStep(t, c, NewSession(), Action{Kind: ActionPick, Choice: Choice{ID: ChoiceViewPoints}})
	require.Equal(t, StateViewPoints, session.State)
	assert.Contains(t, view.Text, "Tima: 0 points")

	// A commit from elsewhere shows up on the next render.
	_, err := ledger.Adjust(context.Background(), "Tima", domain.EntryAdd, 9, "chores", "Papa")
	require.NoError(t, err)

	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceViewHistory))
	require.Equal(t, StateViewHistory, session.State)
	assert.Contains(t, view.Text, "Tima gained 9 points")

	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceBackToPoints))
	require.Equal(t, StateViewPoints, session.State)
	assert.Contains(t, view.Text, "Tima: 9 points")
}

func TestViewHistoryEmptyShowsSentinel(t *testing.T) {
	c, _ := newConversationFixture(t)

	session, view := mustStep(t, c, NewSession(), Action{Kind: ActionPick, Choice: Choice{ID: ChoiceViewPoints}})
	session, view = mustStep(t, c, session, pickChoice(t, view, ChoiceViewHistory))
	require.Equal(t, StateViewHistory, session.State)
	assert.Contains(t, view.Text, "No history available yet.")
}

func TestVerifyViewOffersOnlyVerifiersAndCancel(t *testing.T) {
	c, _ := newConversationFixture(t)

	session, _ := driveToAmount(t, c, "Danya", ChoiceOperationAdd)
	session, _ = mustStep(t, c, session, TextAction("helped"))
	_, view := mustStep(t, c, session, TextAction("10"))

	require.Len(t, view.Choices, 3)
	assert.Equal(t, domain.Member("Mama"), view.Choices[0].Member)
	assert.Equal(t, domain.Member("Papa"), view.Choices[1].Member)
	assert.Equal(t, ChoiceCancelOperation, view.Choices[2].ID)
}

func TestForgedVerifierPickIsIgnored(t *testing.T) {
	c, ledger := newConversationFixture(t)

	session, _ := driveToAmount(t, c, "Tima", ChoiceOperationAdd)
	session, _ = mustStep(t, c, session, TextAction("chores"))
	session, _ = mustStep(t, c, session, TextAction("50"))
	require.Equal(t, StateVerifyOperation, session.State)

	// Vlad is not a verifier; the prompt re-renders and nothing commits.
	forged := PickAction(Choice{ID: ChoiceVerify, Label: "Vlad", Member: "Vlad"})
	session, view := mustStep(t, c, session, forged)
	assert.Equal(t, StateVerifyOperation, session.State)
	assert.Contains(t, view.Text, "needs verification")

	balances, err := ledger.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, balances["Tima"])
}

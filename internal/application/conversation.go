package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vkarev/family-points/internal/domain"
)

// State identifies where a conversation is in the points workflow.
type State string

const (
	StateMainMenu             State = "main_menu"
	StateViewPoints           State = "view_points"
	StateViewHistory          State = "view_history"
	StateSelectPerson         State = "select_person"
	StateSelectOperation      State = "select_operation"
	StateAddReason            State = "add_reason"
	StateSelectTransferTarget State = "select_transfer_target"
	StateAddAmount            State = "add_amount"
	StateVerifyOperation      State = "verify_operation"
)

type ChoiceID string

const (
	ChoiceViewPoints        ChoiceID = "view_points"
	ChoiceManagePoints      ChoiceID = "manage_points"
	ChoiceViewHistory       ChoiceID = "view_history"
	ChoiceBackToMain        ChoiceID = "back_to_main"
	ChoiceBackToPoints      ChoiceID = "back_to_points"
	ChoiceBack              ChoiceID = "back"
	ChoiceSelectPerson      ChoiceID = "select_person"
	ChoiceOperationAdd      ChoiceID = "operation_add"
	ChoiceOperationSubtract ChoiceID = "operation_subtract"
	ChoiceOperationTransfer ChoiceID = "operation_transfer"
	ChoiceTransferTarget    ChoiceID = "transfer_target"
	ChoiceVerify            ChoiceID = "verify"
	ChoiceCancelOperation   ChoiceID = "cancel_operation"
)

// Choice is one selectable action offered by a view. Member picks carry the
// member in a typed field; transitions never parse identifiers out of strings.
type Choice struct {
	ID     ChoiceID
	Label  string
	Member domain.Member
}

type ActionKind string

const (
	ActionPick   ActionKind = "pick"
	ActionText   ActionKind = "text"
	ActionCancel ActionKind = "cancel"
)

// Action is one user turn, decoded by the transport before it reaches the
// state machine: a pick from the previously offered choices, raw free text,
// or the global cancel.
type Action struct {
	Kind   ActionKind
	Choice Choice
	Text   string
}

func PickAction(choice Choice) Action {
	return Action{Kind: ActionPick, Choice: choice}
}

func TextAction(text string) Action {
	return Action{Kind: ActionText, Text: text}
}

func CancelAction() Action {
	return Action{Kind: ActionCancel}
}

// View is what the transport renders after a step: prompt text, the offered
// choices, and whether the next turn is free text instead of a pick. Notice
// carries a recoverable validation message for re-prompts.
type View struct {
	Text     string
	Notice   string
	Choices  []Choice
	FreeText bool
}

// Session is the transient per-conversation state. It is a plain value owned
// by the transport for one conversation and mutated only through Step.
type Session struct {
	State State
	Draft domain.Draft
}

func NewSession() Session {
	return Session{State: StateMainMenu}
}

// Conversation advances one workflow step per user action. All menus are
// regenerated from live data on every step; balances are re-read fresh for
// every sufficiency check.
type Conversation struct {
	ledger *LedgerService
}

func NewConversation(ledger *LedgerService) *Conversation {
	return &Conversation{ledger: ledger}
}

// Start opens a fresh session at the main menu with the welcome prompt.
func (c *Conversation) Start(ctx context.Context) (Session, View, error) {
	session := NewSession()
	view := c.mainMenuView("")
	view.Text = c.welcomeText() + "\n\n" + view.Text

	return session, view, nil
}

// Step validates action against the session's current state and advances at
// most one state. Recoverable input problems re-prompt the same state via
// View.Notice; unknown actions re-render the current prompt unchanged; storage
// failures return an error with the session (draft included) untouched.
func (c *Conversation) Step(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionCancel {
		next := NewSession()
		view := c.mainMenuView("Operation cancelled.")
		return next, view, nil
	}

	switch session.State {
	case StateMainMenu:
		return c.stepMainMenu(ctx, session, action)
	case StateViewPoints:
		return c.stepViewPoints(ctx, session, action)
	case StateViewHistory:
		return c.stepViewHistory(ctx, session, action)
	case StateSelectPerson:
		return c.stepSelectPerson(ctx, session, action)
	case StateSelectOperation:
		return c.stepSelectOperation(ctx, session, action)
	case StateAddReason:
		return c.stepAddReason(ctx, session, action)
	case StateSelectTransferTarget:
		return c.stepSelectTransferTarget(ctx, session, action)
	case StateAddAmount:
		return c.stepAddAmount(ctx, session, action)
	case StateVerifyOperation:
		return c.stepVerifyOperation(ctx, session, action)
	default:
		next := NewSession()
		return next, c.mainMenuView(""), nil
	}
}

func (c *Conversation) stepMainMenu(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceViewPoints:
			view, err := c.pointsView(ctx, "")
			if err != nil {
				return session, View{}, err
			}
			return Session{State: StateViewPoints}, view, nil
		case ChoiceManagePoints:
			return Session{State: StateSelectPerson}, c.selectPersonView(""), nil
		case ChoiceBackToMain:
			return NewSession(), c.mainMenuView(""), nil
		}
	}

	return session, c.mainMenuView(""), nil
}

func (c *Conversation) stepViewPoints(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceViewHistory:
			view, err := c.historyView(ctx)
			if err != nil {
				return session, View{}, err
			}
			return Session{State: StateViewHistory}, view, nil
		case ChoiceBackToMain:
			return NewSession(), c.mainMenuView(""), nil
		}
	}

	view, err := c.pointsView(ctx, "")
	if err != nil {
		return session, View{}, err
	}
	return session, view, nil
}

func (c *Conversation) stepViewHistory(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceBackToPoints:
			view, err := c.pointsView(ctx, "")
			if err != nil {
				return session, View{}, err
			}
			return Session{State: StateViewPoints}, view, nil
		case ChoiceBackToMain:
			return NewSession(), c.mainMenuView(""), nil
		}
	}

	view, err := c.historyView(ctx)
	if err != nil {
		return session, View{}, err
	}
	return session, view, nil
}

func (c *Conversation) stepSelectPerson(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceSelectPerson:
			person := action.Choice.Member
			if !c.ledger.Roster().Contains(person) {
				return session, c.selectPersonView(fmt.Sprintf("%s is not a family member.", person)), nil
			}
			// Person selection restarts the draft.
			next := Session{State: StateSelectOperation, Draft: domain.Draft{Person: person}}
			return next, c.selectOperationView(person), nil
		case ChoiceBackToMain:
			return NewSession(), c.mainMenuView(""), nil
		}
	}

	return session, c.selectPersonView(""), nil
}

func (c *Conversation) stepSelectOperation(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceOperationAdd, ChoiceOperationSubtract:
			kind := domain.EntryAdd
			if action.Choice.ID == ChoiceOperationSubtract {
				kind = domain.EntrySubtract
			}
			next := session
			next.State = StateAddReason
			next.Draft.Kind = kind
			return next, c.reasonPromptView(kind, ""), nil
		case ChoiceOperationTransfer:
			next := session
			next.State = StateSelectTransferTarget
			next.Draft.Kind = domain.EntryTransfer
			return next, c.transferTargetView(next.Draft.Person, ""), nil
		case ChoiceBack:
			return Session{State: StateSelectPerson}, c.selectPersonView(""), nil
		}
	}

	return session, c.selectOperationView(session.Draft.Person), nil
}

func (c *Conversation) stepAddReason(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionText {
		next := session
		next.State = StateAddAmount
		next.Draft.Reason = strings.TrimSpace(action.Text)
		return next, c.amountPromptView(next.Draft, ""), nil
	}

	return session, c.reasonPromptView(session.Draft.Kind, ""), nil
}

func (c *Conversation) stepSelectTransferTarget(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceTransferTarget:
			target := action.Choice.Member
			if target == session.Draft.Person {
				notice := fmt.Sprintf("%s cannot transfer points to themselves.", target)
				return session, c.transferTargetView(session.Draft.Person, notice), nil
			}
			if !c.ledger.Roster().Contains(target) {
				notice := fmt.Sprintf("%s is not a family member.", target)
				return session, c.transferTargetView(session.Draft.Person, notice), nil
			}
			next := session
			next.State = StateAddAmount
			next.Draft.Target = target
			return next, c.amountPromptView(next.Draft, ""), nil
		case ChoiceBack:
			return Session{State: StateSelectOperation, Draft: domain.Draft{Person: session.Draft.Person}},
				c.selectOperationView(session.Draft.Person), nil
		}
	}

	return session, c.transferTargetView(session.Draft.Person, ""), nil
}

func (c *Conversation) stepAddAmount(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind != ActionText {
		return session, c.amountPromptView(session.Draft, ""), nil
	}

	amount, err := strconv.Atoi(strings.TrimSpace(action.Text))
	if err != nil {
		return session, c.amountPromptView(session.Draft, "Please enter a valid number."), nil
	}
	if amount <= 0 {
		return session, c.amountPromptView(session.Draft, "Please enter a positive number."), nil
	}

	switch session.Draft.Kind {
	case domain.EntryTransfer:
		// Transfers commit immediately, no verification gate.
		balances, err := c.ledger.Transfer(ctx, session.Draft.Person, session.Draft.Target, amount)
		if err != nil {
			if notice, ok := recoverableNotice(err); ok {
				return session, c.amountPromptView(session.Draft, notice), nil
			}
			return session, View{}, err
		}

		text := fmt.Sprintf("Transfer complete! %s transferred %d points to %s.\n\nUpdated points:\n%s: %d points\n%s: %d points",
			session.Draft.Person, amount, session.Draft.Target,
			session.Draft.Person, balances[session.Draft.Person],
			session.Draft.Target, balances[session.Draft.Target])
		view := c.mainMenuView("")
		view.Text = text + "\n\n" + view.Text
		return NewSession(), view, nil

	case domain.EntrySubtract:
		if err := c.ledger.CheckSufficient(ctx, session.Draft.Person, amount); err != nil {
			if notice, ok := recoverableNotice(err); ok {
				return session, c.amountPromptView(session.Draft, notice), nil
			}
			return session, View{}, err
		}
	}

	next := session
	next.State = StateVerifyOperation
	next.Draft.Amount = amount
	return next, c.verifyView(next.Draft), nil
}

func (c *Conversation) stepVerifyOperation(ctx context.Context, session Session, action Action) (Session, View, error) {
	if action.Kind == ActionPick {
		switch action.Choice.ID {
		case ChoiceVerify:
			verifier := action.Choice.Member
			if !c.ledger.Roster().IsVerifier(verifier) {
				return session, c.verifyView(session.Draft), nil
			}

			draft := session.Draft
			balances, err := c.ledger.Adjust(ctx, draft.Person, draft.Kind, draft.Amount, draft.Reason, verifier)
			if err != nil {
				if notice, ok := recoverableNotice(err); ok {
					view := c.verifyView(draft)
					view.Notice = notice
					return session, view, nil
				}
				// Storage failure: the draft stays intact so the user can retry.
				return session, View{}, err
			}

			text := fmt.Sprintf("Operation verified by %s and completed successfully!\n\n%s now has %d points.",
				verifier, draft.Person, balances[draft.Person])
			view := c.mainMenuView("")
			view.Text = text + "\n\n" + view.Text
			return NewSession(), view, nil

		case ChoiceCancelOperation:
			return NewSession(), c.mainMenuView("Operation cancelled."), nil
		}
	}

	return session, c.verifyView(session.Draft), nil
}

func (c *Conversation) welcomeText() string {
	names := make([]string, 0, len(c.ledger.Roster().Members))
	for _, member := range c.ledger.Roster().Members {
		names = append(names, string(member))
	}

	return fmt.Sprintf("Welcome to the Family Points Bot!\n\nThis bot helps track points for family members: %s.",
		strings.Join(names, ", "))
}

func (c *Conversation) mainMenuView(notice string) View {
	return View{
		Text:   "Please select an option:",
		Notice: notice,
		Choices: []Choice{
			{ID: ChoiceViewPoints, Label: "View Points"},
			{ID: ChoiceManagePoints, Label: "Manage Points"},
		},
	}
}

func (c *Conversation) pointsView(ctx context.Context, notice string) (View, error) {
	balances, err := c.ledger.Balances(ctx)
	if err != nil {
		return View{}, err
	}

	return View{
		Text:   FormatBalances(c.ledger.Roster(), balances),
		Notice: notice,
		Choices: []Choice{
			{ID: ChoiceViewHistory, Label: "View History"},
			{ID: ChoiceBackToMain, Label: "Back to Main Menu"},
		},
	}, nil
}

func (c *Conversation) historyView(ctx context.Context) (View, error) {
	entries, err := c.ledger.History(ctx)
	if err != nil {
		return View{}, err
	}

	return View{
		Text: FormatHistory(entries, DefaultHistoryLimit),
		Choices: []Choice{
			{ID: ChoiceBackToPoints, Label: "Back to Points Table"},
			{ID: ChoiceBackToMain, Label: "Back to Main Menu"},
		},
	}, nil
}

func (c *Conversation) selectPersonView(notice string) View {
	roster := c.ledger.Roster()
	choices := make([]Choice, 0, len(roster.Members)+1)
	for _, member := range roster.Members {
		choices = append(choices, Choice{ID: ChoiceSelectPerson, Label: string(member), Member: member})
	}
	choices = append(choices, Choice{ID: ChoiceBackToMain, Label: "Back to Main Menu"})

	return View{Text: "Who are you?", Notice: notice, Choices: choices}
}

func (c *Conversation) selectOperationView(person domain.Member) View {
	return View{
		Text: fmt.Sprintf("Hello, %s! What would you like to do?", person),
		Choices: []Choice{
			{ID: ChoiceOperationAdd, Label: "Add Points"},
			{ID: ChoiceOperationSubtract, Label: "Subtract Points"},
			{ID: ChoiceOperationTransfer, Label: "Transfer Points"},
			{ID: ChoiceBack, Label: "Back"},
		},
	}
}

func (c *Conversation) reasonPromptView(kind domain.EntryKind, notice string) View {
	return View{
		Text:     fmt.Sprintf("Please enter a reason for %s points:", kindGerund(kind)),
		Notice:   notice,
		FreeText: true,
	}
}

func (c *Conversation) transferTargetView(person domain.Member, notice string) View {
	targets := c.ledger.Roster().TransferTargets(person)
	choices := make([]Choice, 0, len(targets)+1)
	for _, target := range targets {
		choices = append(choices, Choice{ID: ChoiceTransferTarget, Label: string(target), Member: target})
	}
	choices = append(choices, Choice{ID: ChoiceBack, Label: "Back"})

	return View{Text: "Who would you like to transfer points to?", Notice: notice, Choices: choices}
}

func (c *Conversation) amountPromptView(draft domain.Draft, notice string) View {
	var text string
	if draft.Kind == domain.EntryTransfer {
		text = fmt.Sprintf("How many points do you want to transfer to %s?", draft.Target)
	} else {
		text = fmt.Sprintf("How many points do you want to %s?", draft.Kind)
	}

	return View{Text: text, Notice: notice, FreeText: true}
}

func (c *Conversation) verifyView(draft domain.Draft) View {
	roster := c.ledger.Roster()
	choices := make([]Choice, 0, len(roster.Verifiers)+1)
	for _, verifier := range roster.Verifiers {
		choices = append(choices, Choice{ID: ChoiceVerify, Label: string(verifier), Member: verifier})
	}
	choices = append(choices, Choice{ID: ChoiceCancelOperation, Label: "Cancel"})

	text := fmt.Sprintf("Operation Details:\nPerson: %s\nOperation: %s points\nAmount: %d\nReason: %s\n\nThis operation needs verification from %s:",
		draft.Person, draft.Kind, draft.Amount, draft.Reason, verifierNames(roster.Verifiers))

	return View{Text: text, Choices: choices}
}

func verifierNames(verifiers []domain.Member) string {
	names := make([]string, 0, len(verifiers))
	for _, verifier := range verifiers {
		names = append(names, string(verifier))
	}
	return strings.Join(names, " or ")
}

func kindGerund(kind domain.EntryKind) string {
	switch kind {
	case domain.EntryAdd:
		return "adding"
	case domain.EntrySubtract:
		return "subtracting"
	default:
		return string(kind) + "ing"
	}
}

// recoverableNotice maps validation failures to re-prompt messages. Storage
// and other failures are not recoverable and propagate.
func recoverableNotice(err error) (string, bool) {
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("Sorry, %s only has %d points. Please enter a smaller amount.",
			insufficient.Member, insufficient.Balance), true
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return validation.Message, true
	}

	return "", false
}

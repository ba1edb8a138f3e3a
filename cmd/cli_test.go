package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	rootCmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPointsShowBootstrapsDefaultLedger(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "points", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tima")
	assert.Contains(t, stdout, "0 points")

	_, err = os.Stat(filepath.Join(home, ".family-points", "balances.toml"))
	require.NoError(t, err)
}

func TestPointsAddThenShow(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"points", "add",
		"--member", "Tima",
		"--amount", "50",
		"--reason", "chores",
		"--verified-by", "Mama",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tima now has 50 points")

	stdout, _, err = executeCLI(t, home, "points", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "50 points")

	stdout, _, err = executeCLI(t, home, "points", "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tima")
	assert.Contains(t, stdout, "gained 50 points")
	assert.Contains(t, stdout, "verified by: Mama")
}

func TestPointsAddRequiresVerifierFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "add",
		"--member", "Tima",
		"--amount", "50",
		"--reason", "chores",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"verified-by\" not set")
}

func TestPointsAddRejectsNonVerifier(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "add",
		"--member", "Tima",
		"--amount", "50",
		"--reason", "chores",
		"--verified-by", "Vlad",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot verify")
}

func TestPointsSubtractInsufficientBalance(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "subtract",
		"--member", "Tima",
		"--amount", "10",
		"--reason", "late",
		"--verified-by", "Papa",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only has 0 points")
}

func TestPointsTransferFlow(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "add",
		"--member", "Tima",
		"--amount", "50",
		"--reason", "chores",
		"--verified-by", "Mama",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home,
		"points", "transfer",
		"--from", "Tima",
		"--to", "Vlad",
		"--amount", "20",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tima transferred 20 points to Vlad")
	assert.Contains(t, stdout, "Tima: 30")
	assert.Contains(t, stdout, "Vlad: 20")
}

func TestPointsTransferToSelfFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "transfer",
		"--from", "Tima",
		"--to", "Tima",
		"--amount", "5",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "themselves")
}

func TestPointsShowJSONOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "points", "show", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var balances []struct {
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &balances))
	require.Len(t, balances, 5)
	assert.Equal(t, "Tima", balances[0].Name)
}

func TestPointsHistoryJSONOutput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"points", "add",
		"--member", "Danya",
		"--amount", "7",
		"--reason", "homework",
		"--verified-by", "Papa",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "points", "history", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"person\": \"Danya\"")
	assert.Contains(t, stdout, "\"verified_by\": \"Papa\"")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

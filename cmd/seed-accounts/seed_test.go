package main

import (
	"testing"

	"github.com/pennsieve/playground-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccounts(t *testing.T) {
	accounts, err := LoadAccounts("testdata/accounts.json")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, models.AccountTypeChecking, accounts[0].AccountType)
	assert.Nil(t, accounts[0].CloseDate)
	require.Len(t, accounts[0].Balances, 2)
	assert.Equal(t, 1980.1, accounts[0].Balances[1].Balance.Value)

	assert.Equal(t, models.AccountStatusClosed, accounts[1].Status)
	require.NotNil(t, accounts[1].CloseDate)
}

func TestLoadAccounts_RejectsUnknownEnum(t *testing.T) {
	_, err := LoadAccounts("testdata/invalid.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRYPTO")
}

func TestLoadAccounts_MissingFile(t *testing.T) {
	_, err := LoadAccounts("testdata/missing.json")
	assert.Error(t, err)
}

func TestRootCommand_RequiresFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(discard))
	cmd.SetErr(new(discard))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestRootCommand_InvalidFixtureFailsBeforeConnecting(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--file", "testdata/invalid.json", "--dynamodb-url", "http://127.0.0.1:1"})
	cmd.SetOut(new(discard))
	cmd.SetErr(new(discard))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid.json")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

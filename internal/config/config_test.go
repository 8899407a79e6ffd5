package config_test

import (
	"testing"

	"github.com/pennsieve/playground-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCOUNTS_TABLE", "")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("LOCAL_ADDRESS", "")

	cfg := config.Load()

	assert.Equal(t, config.DefaultAccountsTable, cfg.AccountsTable)
	assert.Equal(t, config.DefaultLocalAddress, cfg.LocalAddress)
	assert.False(t, cfg.IsRunningOnLambda())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ACCOUNTS_TABLE", "beta-accounts")
	t.Setenv("ENV", "TEST")
	t.Setenv("DYNAMODB_URL", "http://localhost:8000")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "beta-playground-lambda-api")

	cfg := config.Load()

	assert.Equal(t, "beta-accounts", cfg.AccountsTable)
	assert.True(t, cfg.UsesLocalDynamoDB())
	assert.True(t, cfg.IsRunningOnLambda())
}

func TestUsesLocalDynamoDB_RequiresTestEnvironment(t *testing.T) {
	cfg := config.Config{Env: "PROD", DynamoDBURL: "http://localhost:8000"}
	assert.False(t, cfg.UsesLocalDynamoDB())
}

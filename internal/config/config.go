package config

import (
	"github.com/spf13/viper"
)

const (
	DefaultAccountsTable = "Account"
	DefaultLocalAddress  = "127.0.0.1:8080"
	DefaultRegion        = "us-east-1"
)

// Config is read once at process start and never modified afterwards.
type Config struct {
	// AccountsTable is ignored when AccountsTableParameter is set.
	AccountsTable          string
	AccountsTableParameter string
	Env                    string // DEV, PROD, TEST or DOCKER
	DynamoDBURL            string
	Region                 string
	LocalAddress           string
	LogLevel               string
	LambdaFunctionName     string
}

// Load reads the configuration from the environment.
func Load() Config {
	v := viper.New()
	v.SetDefault("ACCOUNTS_TABLE", DefaultAccountsTable)
	v.SetDefault("LOCAL_ADDRESS", DefaultLocalAddress)
	v.SetDefault("REGION", DefaultRegion)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.AutomaticEnv()

	return Config{
		AccountsTable:          v.GetString("ACCOUNTS_TABLE"),
		AccountsTableParameter: v.GetString("ACCOUNTS_TABLE_PARAMETER"),
		Env:                    v.GetString("ENV"),
		DynamoDBURL:            v.GetString("DYNAMODB_URL"),
		Region:                 v.GetString("REGION"),
		LocalAddress:           v.GetString("LOCAL_ADDRESS"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LambdaFunctionName:     v.GetString("AWS_LAMBDA_FUNCTION_NAME"),
	}
}

// IsRunningOnLambda reports whether the process was started by the Lambda runtime.
func (c Config) IsRunningOnLambda() bool {
	return c.LambdaFunctionName != ""
}

// UsesLocalDynamoDB is true for test and docker environments with an explicit endpoint.
func (c Config) UsesLocalDynamoDB() bool {
	return (c.Env == "TEST" || c.Env == "DOCKER") && c.DynamoDBURL != ""
}

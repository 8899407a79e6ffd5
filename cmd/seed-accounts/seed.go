package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/pennsieve/playground-api/internal/config"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/pennsieve/playground-api/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDynamoDBURL = "http://localhost:8000"

var logger = logging.Default

// NewRootCommand loads account fixtures into DynamoDB Local.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetDefault("ACCOUNTS_TABLE", config.DefaultAccountsTable)
	v.SetDefault("DYNAMODB_URL", defaultDynamoDBURL)
	v.SetDefault("REGION", config.DefaultRegion)
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "seed-accounts",
		Short: "Load account fixtures into DynamoDB Local",
		Long: `Reads a JSON array of accounts and writes every account into the accounts
table of a local DynamoDB, optionally creating the table first.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := LoadAccounts(v.GetString("file"))
			if err != nil {
				return err
			}

			cfg := config.Config{
				AccountsTable: v.GetString("ACCOUNTS_TABLE"),
				Env:           "DOCKER",
				DynamoDBURL:   v.GetString("DYNAMODB_URL"),
				Region:        v.GetString("REGION"),
			}
			if err := seed(cmd.Context(), cfg, accounts, v.GetBool("create-table")); err != nil {
				return err
			}

			cmd.Printf("seeded %d accounts into %s\n", len(accounts), cfg.AccountsTable)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("file", "f", "", "JSON file holding an array of accounts")
	flags.String("table", "", "accounts table (default $ACCOUNTS_TABLE or Account)")
	flags.String("dynamodb-url", "", "DynamoDB endpoint (default $DYNAMODB_URL or "+defaultDynamoDBURL+")")
	flags.Bool("create-table", false, "create the table when it does not exist")
	_ = rootCmd.MarkFlagRequired("file")

	_ = v.BindPFlag("file", flags.Lookup("file"))
	_ = v.BindPFlag("create-table", flags.Lookup("create-table"))
	rootCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if flags.Changed("table") {
			v.Set("ACCOUNTS_TABLE", flags.Lookup("table").Value.String())
		}
		if flags.Changed("dynamodb-url") {
			v.Set("DYNAMODB_URL", flags.Lookup("dynamodb-url").Value.String())
		}
	}

	return rootCmd
}

// LoadAccounts decodes a fixture file. Enum values are validated on decode.
func LoadAccounts(path string) ([]models.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return accounts, nil
}

func seed(ctx context.Context, cfg config.Config, accounts []models.Account, createTable bool) error {
	awsCfg, err := utils.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}
	client := dynamodb.NewFromConfig(awsCfg)

	if err := waitForDynamoDB(ctx, client); err != nil {
		return fmt.Errorf("DynamoDB at %s is not reachable: %w", cfg.DynamoDBURL, err)
	}

	if createTable {
		if err := ensureTable(ctx, client, cfg.AccountsTable); err != nil {
			return err
		}
	}

	return store_dynamodb.PutAccounts(ctx, client, cfg.AccountsTable, accounts)
}

func waitForDynamoDB(ctx context.Context, client *dynamodb.Client) error {
	return backoff.RetryNotify(func() error {
		_, err := client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
		return err
	}, backoff.WithContext(utils.DefaultBackoff(), ctx), func(err error, next time.Duration) {
		logger.Info("waiting for DynamoDB", slog.String("error", err.Error()), slog.Duration("retryIn", next))
	})
}

func ensureTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !goerrors.As(err, &notFound) {
		return err
	}

	_, err = store_dynamodb.CreateAccountsTable(ctx, client, tableName, 2*time.Minute)
	return err
}

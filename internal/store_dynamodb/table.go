package store_dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
)

// The service itself never writes. These helpers provision DynamoDB Local
// for development and integration tests.

type ItemWriter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

func AccountsTableInput(tableName string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		AttributeDefinitions: []types.AttributeDefinition{{
			AttributeName: aws.String(IdAttribute),
			AttributeType: types.ScalarAttributeTypeS,
		}},
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(IdAttribute),
			KeyType:       types.KeyTypeHash,
		}},
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
	}
}

// CreateAccountsTable creates the table and waits until it is ACTIVE.
func CreateAccountsTable(ctx context.Context, client *dynamodb.Client, tableName string, maxWait time.Duration) (*types.TableDescription, error) {
	table, err := client.CreateTable(ctx, AccountsTableInput(tableName))
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't create table %s: %w", errors.ErrDynamoDB, tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, maxWait)
	if err != nil {
		return nil, fmt.Errorf("%w: wait for table %s failed: %w", errors.ErrDynamoDB, tableName, err)
	}

	logging.FromContext(ctx).Info("created table", slog.String("table", tableName))
	return table.TableDescription, nil
}

// PutAccounts writes every account, overwriting rows with the same id.
func PutAccounts(ctx context.Context, client ItemWriter, tableName string, accounts []models.Account) error {
	for _, account := range accounts {
		item, err := EncodeAccount(account)
		if err != nil {
			return err
		}

		_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tableName),
			Item:      item,
		})
		if err != nil {
			return fmt.Errorf("%w: error putting account %s: %w", errors.ErrDynamoDB, account.Id, err)
		}
	}
	return nil
}

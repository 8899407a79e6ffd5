package test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const DefaultDynamoDBURL = "http://localhost:8000"

var logger = logging.Default

// GetClient returns a client for DynamoDB Local at DYNAMODB_URL.
func GetClient() *dynamodb.Client {
	v := viper.New()
	v.SetDefault("DYNAMODB_URL", DefaultDynamoDBURL)
	v.AutomaticEnv()
	testDBUri := v.GetString("DYNAMODB_URL")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy_secret", "1234")),
		config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: testDBUri}, nil
			})),
	)
	if err != nil {
		panic(err)
	}

	return dynamodb.NewFromConfig(cfg)
}

// SetupAccountsTable creates a uniquely named accounts table holding the
// given accounts and deletes it when the test ends.
func SetupAccountsTable(t *testing.T, client *dynamodb.Client, accounts ...models.Account) string {
	t.Helper()
	tableName := "test-accounts-" + GenerateTestId()

	_, err := store_dynamodb.CreateAccountsTable(context.Background(), client, tableName, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = DeleteTable(client, tableName)
	})

	require.NoError(t, store_dynamodb.PutAccounts(context.Background(), client, tableName, accounts))
	return tableName
}

// ClearAccountsTable deletes every row of the table.
func ClearAccountsTable(client *dynamodb.Client, tableName string) error {
	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName:            aws.String(tableName),
		ProjectionExpression: aws.String(store_dynamodb.IdAttribute),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.TODO())
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			_, err = client.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
				TableName: aws.String(tableName),
				Key:       map[string]types.AttributeValue{store_dynamodb.IdAttribute: item[store_dynamodb.IdAttribute]},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func DeleteTable(dynamoDBClient *dynamodb.Client, tableName string) error {
	_, err := dynamoDBClient.DeleteTable(context.TODO(), &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName)})
	if err != nil {
		logger.Warn("couldn't delete table", slog.String("table", tableName), slog.String("error", err.Error()))
	}
	return err
}

// TableExists reports whether DescribeTable finds the table.
func TableExists(client *dynamodb.Client, tableName string) (bool, error) {
	_, err := client.DescribeTable(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		if strings.Contains(err.Error(), "ResourceNotFoundException") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GenerateTestId generates a unique test ID for test isolation
func GenerateTestId() string {
	id := uuid.New().String()
	return id[len(id)-8:]
}

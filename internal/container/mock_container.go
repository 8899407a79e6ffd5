package container

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pennsieve/playground-api/internal/config"
	"github.com/pennsieve/playground-api/internal/service"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
)

// MockContainer implements the container interface with mocked dependencies for unit tests
type MockContainer struct {
	MockConfig         config.Config
	MockDynamoDBClient *dynamodb.Client
	MockAccountStore   store_dynamodb.AccountStore
	MockAccountService *service.AccountService
}

// NewMockContainer wires an AccountService over the given database client.
func NewMockContainer(client store_dynamodb.DatabaseClient) *MockContainer {
	cfg := config.Config{AccountsTable: config.DefaultAccountsTable}
	accountStore := store_dynamodb.NewAccountDatabaseStore(client, cfg.AccountsTable)
	return &MockContainer{
		MockConfig:         cfg,
		MockAccountStore:   accountStore,
		MockAccountService: service.NewAccountService(accountStore),
	}
}

func (c *MockContainer) Config() config.Config {
	return c.MockConfig
}

func (c *MockContainer) DynamoDBClient() *dynamodb.Client {
	return c.MockDynamoDBClient
}

func (c *MockContainer) AccountStore() store_dynamodb.AccountStore {
	return c.MockAccountStore
}

func (c *MockContainer) AccountService() *service.AccountService {
	return c.MockAccountService
}

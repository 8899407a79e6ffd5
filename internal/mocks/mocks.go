package mocks

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/stretchr/testify/mock"
)

// MemoryDatabaseClient is an in-memory store_dynamodb.DatabaseClient.
// Conditions match string attributes by equality, like the DynamoDB filter.
type MemoryDatabaseClient struct {
	mu     sync.RWMutex
	tables map[string][]map[string]types.AttributeValue
	scans  [][]store_dynamodb.Condition

	// Err, when set, is returned by every Scan.
	Err error
}

func NewMemoryDatabaseClient() *MemoryDatabaseClient {
	return &MemoryDatabaseClient{
		tables: make(map[string][]map[string]types.AttributeValue),
	}
}

func (c *MemoryDatabaseClient) Put(tableName string, items ...map[string]types.AttributeValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[tableName] = append(c.tables[tableName], items...)
}

func (c *MemoryDatabaseClient) Scan(ctx context.Context, tableName string, conditions []store_dynamodb.Condition) ([]map[string]types.AttributeValue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scans = append(c.scans, conditions)

	if c.Err != nil {
		return nil, c.Err
	}

	items := []map[string]types.AttributeValue{}
	for _, item := range c.tables[tableName] {
		if matches(item, conditions) {
			items = append(items, item)
		}
	}
	return items, nil
}

// Scans returns the conditions of every Scan call so far.
func (c *MemoryDatabaseClient) Scans() [][]store_dynamodb.Condition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([][]store_dynamodb.Condition(nil), c.scans...)
}

func matches(item map[string]types.AttributeValue, conditions []store_dynamodb.Condition) bool {
	for _, condition := range conditions {
		value, ok := item[condition.Attribute].(*types.AttributeValueMemberS)
		if !ok || value.Value != condition.Value {
			return false
		}
	}
	return true
}

type MockDatabaseClient struct {
	mock.Mock
}

func (m *MockDatabaseClient) Scan(ctx context.Context, tableName string, conditions []store_dynamodb.Condition) ([]map[string]types.AttributeValue, error) {
	args := m.Called(ctx, tableName, conditions)
	items, _ := args.Get(0).([]map[string]types.AttributeValue)
	return items, args.Error(1)
}

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) List(ctx context.Context, accountType *models.AccountType, status *models.AccountStatus) ([]models.Account, error) {
	args := m.Called(ctx, accountType, status)
	accounts, _ := args.Get(0).([]models.Account)
	return accounts, args.Error(1)
}

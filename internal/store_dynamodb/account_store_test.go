package store_dynamodb_test

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/mocks"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const accountsTable = "test-accounts-table"

func withTypeAndStatus(id string, accountType string, status string) map[string]types.AttributeValue {
	item := accountItem(id)
	item["account_type"] = &types.AttributeValueMemberS{Value: accountType}
	item["status"] = &types.AttributeValueMemberS{Value: status}
	return item
}

func setupAccountStoreTest() (*mocks.MemoryDatabaseClient, store_dynamodb.AccountStore) {
	client := mocks.NewMemoryDatabaseClient()
	client.Put(accountsTable,
		withTypeAndStatus("acc-1", "SAVINGS", "OPEN"),
		withTypeAndStatus("acc-2", "CHECKING", "OPEN"),
		withTypeAndStatus("acc-3", "SAVINGS", "CLOSED"),
	)
	return client, store_dynamodb.NewAccountDatabaseStore(client, accountsTable)
}

func ids(accounts []models.Account) []string {
	result := []string{}
	for _, a := range accounts {
		result = append(result, a.Id)
	}
	return result
}

func TestAccountStore_ListWithoutFilters(t *testing.T) {
	client, store := setupAccountStoreTest()

	accounts, err := store.List(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"acc-1", "acc-2", "acc-3"}, ids(accounts))

	scans := client.Scans()
	require.Len(t, scans, 1)
	assert.Empty(t, scans[0])
}

func TestAccountStore_ListByAccountType(t *testing.T) {
	client, store := setupAccountStoreTest()
	accountType := models.AccountTypeSavings

	accounts, err := store.List(context.Background(), &accountType, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"acc-1", "acc-3"}, ids(accounts))
	assert.Equal(t, []store_dynamodb.Condition{{Attribute: "account_type", Value: "SAVINGS"}}, client.Scans()[0])
}

func TestAccountStore_ListByTypeAndStatus(t *testing.T) {
	client, store := setupAccountStoreTest()
	accountType := models.AccountTypeSavings
	status := models.AccountStatusClosed

	accounts, err := store.List(context.Background(), &accountType, &status)
	require.NoError(t, err)
	assert.Equal(t, []string{"acc-3"}, ids(accounts))
	assert.Equal(t, []store_dynamodb.Condition{
		{Attribute: "account_type", Value: "SAVINGS"},
		{Attribute: "status", Value: "CLOSED"},
	}, client.Scans()[0])
}

func TestAccountStore_ListEmptyTable(t *testing.T) {
	store := store_dynamodb.NewAccountDatabaseStore(mocks.NewMemoryDatabaseClient(), accountsTable)

	accounts, err := store.List(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestAccountStore_ListSkipsMalformedRows(t *testing.T) {
	client, store := setupAccountStoreTest()
	bad := accountItem("acc-bad")
	bad["open_date"] = &types.AttributeValueMemberS{Value: "yesterday"}
	client.Put(accountsTable, bad)

	accounts, err := store.List(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"acc-1", "acc-2", "acc-3"}, ids(accounts))
}

func TestAccountStore_ListWrapsStoreFailure(t *testing.T) {
	cause := goerrors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
	client := &mocks.MockDatabaseClient{}
	client.On("Scan", mock.Anything, accountsTable, []store_dynamodb.Condition{}).Return(nil, cause)
	store := store_dynamodb.NewAccountDatabaseStore(client, accountsTable)

	accounts, err := store.List(context.Background(), nil, nil)
	assert.Nil(t, accounts)
	require.Error(t, err)

	var permanentErr *errors.PermanentError
	require.ErrorAs(t, err, &permanentErr)
	assert.Equal(t, cause, permanentErr.Cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error listing accounts: dial tcp 127.0.0.1:8000: connect: connection refused", err.Error())
	client.AssertExpectations(t)
}

package store_dynamodb_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountFilter_NoFilters(t *testing.T) {
	conditions := store_dynamodb.AccountFilter(nil, nil)
	assert.Empty(t, conditions)

	_, ok, err := store_dynamodb.BuildFilterExpression(conditions)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountFilter_AccountTypeOnly(t *testing.T) {
	accountType := models.AccountTypeSavings

	conditions := store_dynamodb.AccountFilter(&accountType, nil)
	assert.Equal(t, []store_dynamodb.Condition{
		{Attribute: "account_type", Value: "SAVINGS"},
	}, conditions)

	expr, ok, err := store_dynamodb.BuildFilterExpression(conditions)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "#0 = :0", *expr.Filter())
	assert.Equal(t, map[string]string{"#0": "account_type"}, expr.Names())
	assert.Equal(t, map[string]types.AttributeValue{
		":0": &types.AttributeValueMemberS{Value: "SAVINGS"},
	}, expr.Values())
}

func TestAccountFilter_StatusOnly(t *testing.T) {
	status := models.AccountStatusNotInUse

	conditions := store_dynamodb.AccountFilter(nil, &status)
	assert.Equal(t, []store_dynamodb.Condition{
		{Attribute: "status", Value: "NOT_IN_USE"},
	}, conditions)
}

func TestAccountFilter_BothFilters(t *testing.T) {
	accountType := models.AccountTypeExternalParty
	status := models.AccountStatusOpen

	conditions := store_dynamodb.AccountFilter(&accountType, &status)
	assert.Equal(t, []store_dynamodb.Condition{
		{Attribute: "account_type", Value: "EXTERNAL_PARTY"},
		{Attribute: "status", Value: "OPEN"},
	}, conditions)

	expr, ok, err := store_dynamodb.BuildFilterExpression(conditions)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "(#0 = :0) AND (#1 = :1)", *expr.Filter())
	assert.Equal(t, map[string]string{"#0": "account_type", "#1": "status"}, expr.Names())
	assert.Equal(t, map[string]types.AttributeValue{
		":0": &types.AttributeValueMemberS{Value: "EXTERNAL_PARTY"},
		":1": &types.AttributeValueMemberS{Value: "OPEN"},
	}, expr.Values())
}

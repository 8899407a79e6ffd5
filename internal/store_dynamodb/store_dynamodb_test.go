package store_dynamodb_test

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedScanAPI serves pages in order and records every ScanInput.
type pagedScanAPI struct {
	pages  []*dynamodb.ScanOutput
	err    error
	inputs []*dynamodb.ScanInput
}

func (p *pagedScanAPI) Scan(ctx context.Context, input *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	p.inputs = append(p.inputs, input)
	if p.err != nil {
		return nil, p.err
	}
	page := p.pages[len(p.inputs)-1]
	return page, nil
}

func TestDynamoDBClient_ScanReadsEveryPage(t *testing.T) {
	api := &pagedScanAPI{pages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{accountItem("acc-1"), accountItem("acc-2")},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "acc-2"}},
		},
		{
			Items: []map[string]types.AttributeValue{accountItem("acc-3")},
		},
	}}
	client := store_dynamodb.NewDynamoDBClient(api)

	items, err := client.Scan(context.Background(), "Account", nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "acc-3"}, items[2]["id"])

	require.Len(t, api.inputs, 2)
	assert.Equal(t, "Account", aws.ToString(api.inputs[0].TableName))
	assert.Nil(t, api.inputs[0].FilterExpression)
	assert.Empty(t, api.inputs[0].ExpressionAttributeValues)
	assert.Equal(t, map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "acc-2"}}, api.inputs[1].ExclusiveStartKey)
}

func TestDynamoDBClient_ScanAppliesFilter(t *testing.T) {
	api := &pagedScanAPI{pages: []*dynamodb.ScanOutput{{}}}
	client := store_dynamodb.NewDynamoDBClient(api)

	items, err := client.Scan(context.Background(), "Account", []store_dynamodb.Condition{
		{Attribute: "status", Value: "OPEN"},
	})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.Len(t, api.inputs, 1)
	assert.Equal(t, "#0 = :0", aws.ToString(api.inputs[0].FilterExpression))
	assert.Equal(t, map[string]string{"#0": "status"}, api.inputs[0].ExpressionAttributeNames)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "OPEN"}, api.inputs[0].ExpressionAttributeValues[":0"])
}

func TestDynamoDBClient_ScanError(t *testing.T) {
	cause := goerrors.New("connection refused")
	client := store_dynamodb.NewDynamoDBClient(&pagedScanAPI{err: cause})

	_, err := client.Scan(context.Background(), "Account", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Account")
}

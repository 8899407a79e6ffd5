package store_dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DatabaseClient returns every row of a table matching all conditions.
type DatabaseClient interface {
	Scan(ctx context.Context, tableName string, conditions []Condition) ([]map[string]types.AttributeValue, error)
}

// DynamoDBClient scans a DynamoDB table. The filter is applied server side
// while the whole table is read page by page.
type DynamoDBClient struct {
	DB dynamodb.ScanAPIClient
}

func NewDynamoDBClient(db dynamodb.ScanAPIClient) DatabaseClient {
	return &DynamoDBClient{db}
}

func (c *DynamoDBClient) Scan(ctx context.Context, tableName string, conditions []Condition) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	}

	expr, ok, err := BuildFilterExpression(conditions)
	if err != nil {
		return nil, err
	}
	if ok {
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
		input.FilterExpression = expr.Filter()
	}

	items := []map[string]types.AttributeValue{}
	paginator := dynamodb.NewScanPaginator(c.DB, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error scanning table %s: %w", tableName, err)
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

package store_dynamodb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/pennsieve/playground-api/internal/models"
)

// Condition is an equality test of one string attribute.
type Condition struct {
	Attribute string
	Value     string
}

// AccountFilter returns one condition per supplied filter, account type
// first, bound to the canonical enum strings. No filters means no conditions.
func AccountFilter(accountType *models.AccountType, status *models.AccountStatus) []Condition {
	conditions := []Condition{}
	if accountType != nil {
		conditions = append(conditions, Condition{Attribute: AccountTypeAttribute, Value: accountType.String()})
	}
	if status != nil {
		conditions = append(conditions, Condition{Attribute: StatusAttribute, Value: status.String()})
	}
	return conditions
}

// BuildFilterExpression ANDs the conditions in order using named
// placeholders. ok is false when there is nothing to filter on.
func BuildFilterExpression(conditions []Condition) (expr expression.Expression, ok bool, err error) {
	if len(conditions) == 0 {
		return expression.Expression{}, false, nil
	}

	c := expression.Name(conditions[0].Attribute).Equal(expression.Value(conditions[0].Value))
	for _, condition := range conditions[1:] {
		c = c.And(expression.Name(condition.Attribute).Equal(expression.Value(condition.Value)))
	}

	expr, err = expression.NewBuilder().WithFilter(c).Build()
	if err != nil {
		return expression.Expression{}, false, fmt.Errorf("error building expression: %w", err)
	}
	return expr, true, nil
}

package docs

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/utils"
)

const Version = "1.0.0"

var apiDocs = sync.OnceValues(func() ([]byte, error) {
	return json.Marshal(OpenAPI())
})

func GetAPIDocsHandler(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	m, err := apiDocs()
	if err != nil {
		logging.FromContext(ctx).Error(errors.HandlerError("GetAPIDocsHandler", err))
		return utils.ErrorResponse(http.StatusInternalServerError, errors.ErrMarshaling), nil
	}
	return utils.JSONResponse(http.StatusOK, string(m)), nil
}

// OpenAPI describes the public surface of the service.
func OpenAPI() *openapi3.T {
	accountTypeParameter := openapi3.NewQueryParameter("account_type").
		WithDescription("Only list accounts of this type").
		WithSchema(enumSchema(models.AccountTypes()))
	accountStatusParameter := openapi3.NewQueryParameter("account_status").
		WithDescription("Only list accounts with this status").
		WithSchema(enumSchema(models.AccountStatuses()))

	listAccounts := &openapi3.Operation{
		OperationID: "listAccounts",
		Summary:     "List accounts",
		Tags:        []string{"accounts"},
		Parameters: openapi3.Parameters{
			{Value: accountTypeParameter},
			{Value: accountStatusParameter},
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Accounts matching the filters").
					WithJSONSchema(openapi3.NewArraySchema().WithItems(accountSchema())),
			}),
			openapi3.WithStatus(http.StatusBadRequest, errorResponse("Invalid filter value")),
			openapi3.WithStatus(http.StatusInternalServerError, errorResponse("The accounts table could not be read")),
		),
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Playground API",
			Version: Version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/accounts", &openapi3.PathItem{Get: listAccounts}),
		),
	}
}

func accountSchema() *openapi3.Schema {
	currency := openapi3.NewObjectSchema().
		WithProperty("code", enumSchema(models.CurrencyCodes())).
		WithProperty("value", openapi3.NewFloat64Schema())
	currency.Required = []string{"code", "value"}

	balance := openapi3.NewObjectSchema().
		WithProperty("date", openapi3.NewDateTimeSchema()).
		WithProperty("balance", currency)
	balance.Required = []string{"date", "balance"}

	account := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("bank_name", openapi3.NewStringSchema()).
		WithProperty("open_date", openapi3.NewDateTimeSchema()).
		WithProperty("close_date", openapi3.NewDateTimeSchema()).
		WithProperty("account_type", enumSchema(models.AccountTypes())).
		WithProperty("status", enumSchema(models.AccountStatuses())).
		WithProperty("balances", openapi3.NewArraySchema().WithItems(balance))
	account.Required = []string{"id", "name", "bank_name", "open_date", "account_type", "status", "balances"}

	return account
}

func errorResponse(description string) *openapi3.ResponseRef {
	body := openapi3.NewObjectSchema().WithProperty("cause", openapi3.NewStringSchema())
	body.Required = []string{"cause"}

	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(body),
	}
}

func enumSchema[T ~string](values []T) *openapi3.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return openapi3.NewStringSchema().WithEnum(enum...)
}

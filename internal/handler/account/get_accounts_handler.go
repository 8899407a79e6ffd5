package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/pennsieve/playground-api/internal/container"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/utils"
)

const (
	AccountTypeParameter   = "account_type"
	AccountStatusParameter = "account_status"
)

// GetAccountsHandlerWithContainer serves GET /accounts. Both filters are
// optional and must match a canonical enum string exactly.
func GetAccountsHandlerWithContainer(ctx context.Context, request events.APIGatewayV2HTTPRequest, container container.DependencyContainer) (events.APIGatewayV2HTTPResponse, error) {
	handlerName := "GetAccountsHandler"
	logger := logging.FromContext(ctx)

	accountType, status, err := ParseAccountFilters(request.QueryStringParameters)
	if err != nil {
		logger.Warn(errors.HandlerError(handlerName, err))
		return utils.ErrorResponse(http.StatusBadRequest, err), nil
	}

	accounts, err := container.AccountService().ListAccounts(ctx, accountType, status)
	if err != nil {
		logger.Error(errors.HandlerError(handlerName, err))
		return utils.ErrorResponse(http.StatusInternalServerError, err), nil
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	m, err := json.Marshal(accounts)
	if err != nil {
		logger.Error(errors.HandlerError(handlerName, err))
		return utils.ErrorResponse(http.StatusInternalServerError, errors.ErrMarshaling), nil
	}

	return utils.JSONResponse(http.StatusOK, string(m)), nil
}

// ParseAccountFilters reads account_type and account_status. Absent or empty
// parameters yield nil filters.
func ParseAccountFilters(queryParams map[string]string) (*models.AccountType, *models.AccountStatus, error) {
	var accountType *models.AccountType
	if value := queryParams[AccountTypeParameter]; value != "" {
		parsed, err := models.ParseAccountType(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %s: %w", errors.ErrInvalidQueryParameter, AccountTypeParameter, err)
		}
		accountType = &parsed
	}

	var status *models.AccountStatus
	if value := queryParams[AccountStatusParameter]; value != "" {
		parsed, err := models.ParseAccountStatus(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %s: %w", errors.ErrInvalidQueryParameter, AccountStatusParameter, err)
		}
		status = &parsed
	}

	return accountType, status, nil
}

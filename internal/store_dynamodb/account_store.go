package store_dynamodb

import (
	"context"
	"log/slog"

	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
)

type AccountStore interface {
	List(context.Context, *models.AccountType, *models.AccountStatus) ([]models.Account, error)
}

type AccountDatabaseStore struct {
	Client    DatabaseClient
	TableName string
}

func NewAccountDatabaseStore(client DatabaseClient, tableName string) AccountStore {
	return &AccountDatabaseStore{client, tableName}
}

// List returns the accounts matching the optional filters in the order the
// table returns them. Rows that cannot be decoded are logged and skipped; a
// failed scan is returned as *errors.PermanentError.
func (r *AccountDatabaseStore) List(ctx context.Context, accountType *models.AccountType, status *models.AccountStatus) ([]models.Account, error) {
	items, err := r.Client.Scan(ctx, r.TableName, AccountFilter(accountType, status))
	if err != nil {
		return nil, &errors.PermanentError{
			Cause:   err,
			Message: errors.ErrListingAccounts.Error(),
		}
	}

	accounts, decodeErrs := DecodeAccounts(items)
	if len(decodeErrs) > 0 {
		logger := logging.FromContext(ctx)
		for _, decodeErr := range decodeErrs {
			logger.Warn("skipping malformed account row",
				slog.String("table", r.TableName),
				slog.String("accountId", decodeErr.RowId),
				slog.String("attribute", decodeErr.Attribute),
				slog.String("error", decodeErr.Err.Error()))
		}
	}

	return accounts, nil
}

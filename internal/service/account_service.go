package service

import (
	"context"
	"log/slog"

	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/models"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
)

type AccountService struct {
	AccountStore store_dynamodb.AccountStore
}

func NewAccountService(accountStore store_dynamodb.AccountStore) *AccountService {
	return &AccountService{AccountStore: accountStore}
}

// ListAccounts lists accounts, optionally restricted to one account type
// and/or one status. A nil filter matches every value.
func (s *AccountService) ListAccounts(ctx context.Context, accountType *models.AccountType, status *models.AccountStatus) ([]models.Account, error) {
	logger := logging.FromContext(ctx)
	logger.Info("listing accounts",
		slog.Any("accountType", accountType),
		slog.Any("status", status))

	accounts, err := s.AccountStore.List(ctx, accountType, status)
	if err != nil {
		return nil, err
	}

	logger.Debug("listed accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

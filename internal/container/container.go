package container

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pennsieve/playground-api/internal/config"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/service"
	"github.com/pennsieve/playground-api/internal/store_dynamodb"
	"github.com/pennsieve/playground-api/internal/utils"
)

// DependencyContainer defines the interface for dependency injection
type DependencyContainer interface {
	Config() config.Config
	DynamoDBClient() *dynamodb.Client
	AccountStore() store_dynamodb.AccountStore
	AccountService() *service.AccountService
}

// ParameterGetter is the part of the SSM client used to resolve the table name.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Container implements the production dependency container. Everything is
// built in the constructor and shared read-only by all requests.
type Container struct {
	config         config.Config
	awsConfig      aws.Config
	dynamoClient   *dynamodb.Client
	accountStore   store_dynamodb.AccountStore
	accountService *service.AccountService
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	awsConfig, err := utils.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}

	if cfg.AccountsTableParameter != "" {
		cfg.AccountsTable, err = ResolveTableName(ctx, ssm.NewFromConfig(awsConfig), cfg.AccountsTableParameter)
		if err != nil {
			return nil, err
		}
	}

	return NewContainerWithConfig(awsConfig, cfg), nil
}

func NewContainerWithConfig(awsConfig aws.Config, cfg config.Config) *Container {
	dynamoClient := dynamodb.NewFromConfig(awsConfig)
	accountStore := store_dynamodb.NewAccountDatabaseStore(
		store_dynamodb.NewDynamoDBClient(dynamoClient),
		cfg.AccountsTable,
	)

	return &Container{
		config:         cfg,
		awsConfig:      awsConfig,
		dynamoClient:   dynamoClient,
		accountStore:   accountStore,
		accountService: service.NewAccountService(accountStore),
	}
}

// ResolveTableName reads the accounts table name from an SSM parameter.
func ResolveTableName(ctx context.Context, client ParameterGetter, parameterName string) (string, error) {
	output, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(parameterName),
	})
	if err != nil {
		return "", fmt.Errorf("%w: error reading parameter %s: %w", errors.ErrConfig, parameterName, err)
	}
	if output.Parameter == nil || aws.ToString(output.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: parameter %s is empty", errors.ErrConfig, parameterName)
	}
	return aws.ToString(output.Parameter.Value), nil
}

func (c *Container) Config() config.Config {
	return c.config
}

func (c *Container) DynamoDBClient() *dynamodb.Client {
	return c.dynamoClient
}

func (c *Container) AccountStore() store_dynamodb.AccountStore {
	return c.accountStore
}

func (c *Container) AccountService() *service.AccountService {
	return c.accountService
}

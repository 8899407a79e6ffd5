package utils

import (
	"context"
	"regexp"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/pennsieve/playground-api/internal/config"
)

var routeKeyPattern = regexp.MustCompile(`^(?P<method>[A-Z]+) (?P<pathKey>/.*)$`)

// ExtractRoute returns the path part of an API Gateway route key such as
// "GET /accounts". Route keys without a path ($default, function URLs) fall
// back to the raw request path.
func ExtractRoute(request events.APIGatewayV2HTTPRequest) string {
	routeKeyParts := routeKeyPattern.FindStringSubmatch(request.RouteKey)
	if routeKeyParts == nil {
		return request.RawPath
	}
	return routeKeyParts[routeKeyPattern.SubexpIndex("pathKey")]
}

// LoadAWSConfig loads AWS configuration with test-aware settings
// This function handles both production and test/docker environments
func LoadAWSConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	if cfg.UsesLocalDynamoDB() {
		dynamoEndpoint := cfg.DynamoDBURL
		return awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(cfg.Region),
			awsConfig.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     "test",
					SecretAccessKey: "test",
				}, nil
			})),
			awsConfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == dynamodb.ServiceID {
						return aws.Endpoint{URL: dynamoEndpoint}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				})))
	}

	// Production environment - use default config
	return awsConfig.LoadDefaultConfig(ctx)
}

// DefaultBackoff is used by dev tooling waiting on DynamoDB Local. The request
// path never retries.
func DefaultBackoff() backoff.BackOff {
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 30 * time.Second

	return boff
}

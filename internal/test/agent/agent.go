package agent

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"
)

const DefaultRunningEnv = "beta"

// Request is one HTTP call to the deployed API.
type Request struct {
	Path                  string
	Method                string
	QueryStringParameters map[string]string
	Body                  string
}

type Response struct {
	StatusCode int
	Body       string
}

type Agent interface {
	Call(ctx context.Context, request Request) (Response, error)
}

type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaAgent calls the API by invoking its function directly with an API
// Gateway v2 event, bypassing the gateway.
type LambdaAgent struct {
	Client       Invoker
	FunctionName string
}

func FunctionName(runningEnv string) string {
	return runningEnv + "-playground-lambda-api"
}

func NewLambdaAgent(client Invoker, runningEnv string) *LambdaAgent {
	return &LambdaAgent{Client: client, FunctionName: FunctionName(runningEnv)}
}

// NewLambdaAgentFromEnv targets the environment named by RUNNING_ENV.
func NewLambdaAgentFromEnv(ctx context.Context) (*LambdaAgent, error) {
	v := viper.New()
	v.SetDefault("RUNNING_ENV", DefaultRunningEnv)
	v.AutomaticEnv()

	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewLambdaAgent(lambda.NewFromConfig(cfg), v.GetString("RUNNING_ENV")), nil
}

func (a *LambdaAgent) Call(ctx context.Context, request Request) (Response, error) {
	payload, err := json.Marshal(NewEvent(request))
	if err != nil {
		return Response{}, err
	}

	out, err := a.Client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(a.FunctionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return Response{}, fmt.Errorf("error invoking %s: %w", a.FunctionName, err)
	}
	if out.FunctionError != nil {
		return Response{}, fmt.Errorf("%s failed with %s: %s", a.FunctionName, aws.ToString(out.FunctionError), string(out.Payload))
	}

	var response events.APIGatewayV2HTTPResponse
	if err := json.Unmarshal(out.Payload, &response); err != nil {
		return Response{}, fmt.Errorf("error decoding response of %s: %w", a.FunctionName, err)
	}

	body := response.Body
	if response.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return Response{}, fmt.Errorf("error decoding response body of %s: %w", a.FunctionName, err)
		}
		body = string(decoded)
	}

	return Response{StatusCode: response.StatusCode, Body: body}, nil
}

func NewEvent(request Request) events.APIGatewayV2HTTPRequest {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	return events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              method + " " + request.Path,
		RawPath:               request.Path,
		QueryStringParameters: request.QueryStringParameters,
		Body:                  request.Body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   request.Path,
			},
		},
	}
}

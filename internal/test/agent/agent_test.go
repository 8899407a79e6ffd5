package agent

import (
	"context"
	"encoding/base64"
	goerrors "errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvoker struct {
	mock.Mock
}

func (m *mockInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*lambda.InvokeOutput)
	return out, args.Error(1)
}

func responsePayload(t *testing.T, response events.APIGatewayV2HTTPResponse) []byte {
	payload, err := json.Marshal(response)
	require.NoError(t, err)
	return payload
}

func TestFunctionName(t *testing.T) {
	assert.Equal(t, "beta-playground-lambda-api", FunctionName(DefaultRunningEnv))
	assert.Equal(t, "prod-playground-lambda-api", FunctionName("prod"))
}

func TestLambdaAgent_Call(t *testing.T) {
	invoker := &mockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.MatchedBy(func(input *lambda.InvokeInput) bool {
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(input.Payload, &event); err != nil {
			return false
		}
		return aws.ToString(input.FunctionName) == "beta-playground-lambda-api" &&
			input.InvocationType == types.InvocationTypeRequestResponse &&
			event.RouteKey == "GET /accounts" &&
			event.RequestContext.HTTP.Method == http.MethodGet &&
			event.QueryStringParameters["account_type"] == "SAVINGS"
	})).Return(&lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    responsePayload(t, events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Body: "[]"}),
	}, nil)

	response, err := NewLambdaAgent(invoker, "beta").Call(context.Background(), Request{
		Path:                  "/accounts",
		QueryStringParameters: map[string]string{"account_type": "SAVINGS"},
	})
	require.NoError(t, err)
	assert.Equal(t, Response{StatusCode: http.StatusOK, Body: "[]"}, response)
	invoker.AssertExpectations(t)
}

func TestLambdaAgent_CallDecodesBase64Body(t *testing.T) {
	invoker := &mockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(&lambda.InvokeOutput{
		Payload: responsePayload(t, events.APIGatewayV2HTTPResponse{
			StatusCode:      http.StatusBadRequest,
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"cause":"bad"}`)),
			IsBase64Encoded: true,
		}),
	}, nil)

	response, err := NewLambdaAgent(invoker, "beta").Call(context.Background(), Request{Path: "/accounts"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, `{"cause":"bad"}`, response.Body)
}

func TestLambdaAgent_CallFunctionError(t *testing.T) {
	invoker := &mockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(&lambda.InvokeOutput{
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"boom"}`),
	}, nil)

	_, err := NewLambdaAgent(invoker, "beta").Call(context.Background(), Request{Path: "/accounts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unhandled")
	assert.Contains(t, err.Error(), "boom")
}

func TestLambdaAgent_CallInvokeError(t *testing.T) {
	invoker := &mockInvoker{}
	cause := goerrors.New("AccessDeniedException")
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewLambdaAgent(invoker, "beta").Call(context.Background(), Request{Path: "/accounts"})
	assert.ErrorIs(t, err, cause)
}

package handler

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pennsieve/playground-api/internal/container"
	accountHandler "github.com/pennsieve/playground-api/internal/handler/account"
	docsHandler "github.com/pennsieve/playground-api/internal/handler/docs"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/utils"
)

var logger = logging.Default

type LambdaHandlerFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// NewAccountServiceHandler returns the function handed to lambda.Start. The
// router is built once and shared by every invocation.
func NewAccountServiceHandler(c container.DependencyContainer) LambdaHandlerFunc {
	router := NewRouter(c)

	return func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		requestLogger := logger.With(slog.String("requestID", requestID(ctx, request)))
		requestLogger.Info("handling request",
			slog.String("method", request.RequestContext.HTTP.Method),
			slog.String("routeKey", request.RouteKey),
			slog.String("path", request.RawPath),
			slog.Any("queryStringParameters", request.QueryStringParameters))

		response, err := router.Start(logging.NewContext(ctx, requestLogger), request)
		if err != nil {
			requestLogger.Error("request failed", slog.String("error", err.Error()))
			return response, err
		}

		if utils.IsClientError(response.StatusCode) {
			requestLogger.Warn("request rejected", slog.Int("statusCode", response.StatusCode))
		} else {
			requestLogger.Info("request complete", slog.Int("statusCode", response.StatusCode))
		}
		return response, nil
	}
}

func NewRouter(c container.DependencyContainer) Router {
	router := NewLambdaRouter()
	router.GET("/accounts", func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return accountHandler.GetAccountsHandlerWithContainer(ctx, request, c)
	})
	router.GET("/api-docs", docsHandler.GetAPIDocsHandler)

	return router
}

func requestID(ctx context.Context, request events.APIGatewayV2HTTPRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return request.RequestContext.RequestID
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/utils"
)

type RouterHandlerFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// Defines the router interface
type Router interface {
	GET(string, RouterHandlerFunc)
	Start(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)
}

// LambdaRouter dispatches on the path of the route key, or the raw path for
// catch-all routes. Routes are registered before the first request and only
// read afterwards.
type LambdaRouter struct {
	getRoutes map[string]RouterHandlerFunc
}

func NewLambdaRouter() Router {
	return &LambdaRouter{
		getRoutes: make(map[string]RouterHandlerFunc),
	}
}

func (r *LambdaRouter) GET(routeKey string, handler RouterHandlerFunc) {
	r.getRoutes[routeKey] = handler
}

func (r *LambdaRouter) Start(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	routeKey := utils.ExtractRoute(request)

	switch request.RequestContext.HTTP.Method {
	case http.MethodGet:
		f, ok := r.getRoutes[routeKey]
		if ok {
			return f(ctx, request)
		} else {
			return handleError(ctx, routeKey, http.StatusNotFound, errors.ErrUnsupportedRoute)
		}
	default:
		return handleError(ctx, routeKey, http.StatusUnprocessableEntity, errors.ErrUnsupportedPath)
	}
}

func handleError(ctx context.Context, routeKey string, statusCode int, err error) (events.APIGatewayV2HTTPResponse, error) {
	logging.FromContext(ctx).Warn(err.Error(), slog.String("route", routeKey))
	return utils.ErrorResponse(statusCode, err), nil
}

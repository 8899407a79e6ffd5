package utils

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pennsieve/playground-api/internal/errors"
)

func JSONResponse(statusCode int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// ErrorResponse renders err as {"cause": "..."} with the given status code.
func ErrorResponse(statusCode int, err error) events.APIGatewayV2HTTPResponse {
	return JSONResponse(statusCode, errors.ErrorBody(err))
}

// IsClientError reports whether the status code is a 4xx.
func IsClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

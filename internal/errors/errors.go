package errors

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Router errors
var ErrUnsupportedRoute = errors.New("unsupported route")
var ErrUnsupportedPath = errors.New("unsupported path")

// Account-specific errors
var ErrInvalidEnumValue = errors.New("invalid enum value")
var ErrInvalidQueryParameter = errors.New("invalid query parameter")
var ErrListingAccounts = errors.New("error listing accounts")

// Row decoding errors
var ErrMissingAttribute = errors.New("missing attribute")
var ErrAttributeType = errors.New("unexpected attribute type")
var ErrInvalidDate = errors.New("invalid date")

// Common errors used across handlers
var ErrMarshaling = errors.New("error marshaling item")
var ErrConfig = errors.New("error loading AWS config")
var ErrDynamoDB = errors.New("error performing action on DynamoDB table")

// PermanentError is the only error kind surfaced past the account store.
// It is not retried.
type PermanentError struct {
	Cause   error
	Message string
}

func (e *PermanentError) Error() string {
	if e.Message == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
}

func (e *PermanentError) Unwrap() error {
	return e.Cause
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Cause string `json:"cause"`
}

// HandlerError formats error messages for handlers
func HandlerError(handlerName string, handlerError error) string {
	return fmt.Sprintf("%s: %s", handlerName, handlerError.Error())
}

// ErrorBody renders err as an ErrorResponse. Only the display string of the
// error leaves the service.
func ErrorBody(err error) string {
	m, marshalErr := json.Marshal(ErrorResponse{Cause: err.Error()})
	if marshalErr != nil {
		return `{"cause":"` + ErrMarshaling.Error() + `"}`
	}
	return string(m)
}

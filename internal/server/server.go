package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/handler"
	"github.com/pennsieve/playground-api/internal/logging"
)

// Server serves the Lambda handler over plain HTTP for local runs. Every
// request is wrapped in an API Gateway v2 envelope so both modes share the
// same router.
type Server struct {
	*echo.Echo
	handler handler.LambdaHandlerFunc
}

func NewServer(accountServiceHandler handler.LambdaHandlerFunc) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = DefaultJSONSerializer{}
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLogger(logging.Default))

	s := &Server{e, accountServiceHandler}

	s.registerHandlers()

	return s
}

// Start blocks until the listener fails or the server is shut down.
func (s *Server) Start(address string) error {
	logging.Default.Info("starting local server", slog.String("address", address))
	if err := s.Echo.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) registerHandlers() {
	s.Any("/*", s.LambdaProxyHandler())
}

// LambdaProxyHandler translates the echo request into the event API Gateway
// sends for a $default route and writes the handler response back.
func (s *Server) LambdaProxyHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		request, err := NewAPIGatewayRequest(c)
		if err != nil {
			return err
		}

		response, err := s.handler(c.Request().Context(), request)
		if err != nil {
			return err
		}

		return writeResponse(c, response)
	}
}

func NewAPIGatewayRequest(c echo.Context) (events.APIGatewayV2HTTPRequest, error) {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, echo.NewHTTPError(http.StatusBadRequest, "error reading request body").SetInternal(err)
	}

	var queryParams map[string]string
	if query := req.URL.Query(); len(query) > 0 {
		queryParams = make(map[string]string, len(query))
		for key, values := range query {
			queryParams[key] = strings.Join(values, ",")
		}
	}

	headers := make(map[string]string, len(req.Header))
	for key, values := range req.Header {
		headers[strings.ToLower(key)] = strings.Join(values, ",")
	}

	now := time.Now()
	return events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              "$default",
		RawPath:               req.URL.Path,
		RawQueryString:        req.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: queryParams,
		Body:                  string(body),
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey:   "$default",
			Stage:      "$default",
			RequestID:  c.Response().Header().Get(echo.HeaderXRequestID),
			DomainName: req.Host,
			Time:       now.Format("02/Jan/2006:15:04:05 -0700"),
			TimeEpoch:  now.UnixMilli(),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    req.Method,
				Path:      req.URL.Path,
				Protocol:  req.Proto,
				SourceIP:  c.RealIP(),
				UserAgent: req.UserAgent(),
			},
		},
	}, nil
}

func writeResponse(c echo.Context, response events.APIGatewayV2HTTPResponse) error {
	contentType := echo.MIMETextPlainCharsetUTF8
	for key, value := range response.Headers {
		if strings.EqualFold(key, echo.HeaderContentType) {
			contentType = value
			continue
		}
		c.Response().Header().Set(key, value)
	}
	return c.Blob(response.StatusCode, contentType, []byte(response.Body))
}

// HTTPErrorHandler renders every error as {"cause": "..."}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	cause := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		cause = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errors.ErrorResponse{Cause: cause})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:  true,
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRequestID: true,
		LogStatus:    true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("requestID", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}

// DefaultJSONSerializer implements JSON encoding using goccy/go-json.
type DefaultJSONSerializer struct{}

func (d DefaultJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (d DefaultJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	} else if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}

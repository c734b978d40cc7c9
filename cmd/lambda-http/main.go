package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/telemetry"
)

// routerFunc builds the HTTP router once per cold start.
type routerFunc func(ctx context.Context) (*gin.Engine, error)

type lambdaHandler struct {
	build routerFunc

	once      sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2
}

func newLambdaHandler(build routerFunc) *lambdaHandler {
	return &lambdaHandler{build: build}
}

func (h *lambdaHandler) init(ctx context.Context) {
	router, err := h.build(ctx)
	if err != nil {
		h.initErr = err
		return
	}
	h.ginLambda = ginadapter.NewV2(router)
}

func (h *lambdaHandler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	h.once.Do(func() { h.init(ctx) })
	if h.initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": h.initErr})
		return jsonError(http.StatusInternalServerError, "bootstrap failed"), h.initErr
	}
	if h.ginLambda == nil {
		return jsonError(http.StatusInternalServerError, "router not initialized"), nil
	}
	return h.ginLambda.ProxyWithContext(ctx, req)
}

func jsonError(status int, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func buildRouter(ctx context.Context) (*gin.Engine, error) {
	cfg := config.Load()
	if _, err := telemetry.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, err
	}
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.Router, nil
}

func main() {
	lambda.Start(newLambdaHandler(buildRouter).Handle)
}

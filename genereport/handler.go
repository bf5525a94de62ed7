package genereport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Handler is the Lambda-facing request handler. The inbound request is a
// trigger only; none of its fields are consumed.
type Handler struct {
	cfg Config
	log *zap.Logger

	// newClient builds the per-invocation client; overridden in tests.
	newClient func(context.Context, Config) (*Client, error)
}

// NewHandler creates a handler that runs the report query with cfg on each
// invocation.
func NewHandler(cfg Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		cfg:       cfg,
		log:       log,
		newClient: NewClient,
	}
}

// Handle runs one report query and returns the decoded lines as a JSON
// array with status 200. Every failure aborts the invocation and is
// returned to the runtime; there is no partial result delivery.
func (h *Handler) Handle(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cfg := h.cfg
	cfg.Logger = h.log

	client, err := h.newClient(ctx, cfg)
	if err != nil {
		h.log.Error("failed to build query client", zap.Error(err))
		return errorResponse(err)
	}

	lines, err := client.Run(ctx)
	if err != nil {
		h.log.Error("report query failed", zap.Error(err))
		return errorResponse(err)
	}

	body, err := json.Marshal(lines)
	if err != nil {
		h.log.Error("failed to marshal report", zap.Error(err))
		return errorResponse(fmt.Errorf("failed to marshal report: %w", err))
	}

	h.log.Info("report query complete", zap.Int("lines", len(lines)))
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func errorResponse(err error) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       err.Error(),
	}, err
}

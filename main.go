// main entry point: runs as the Lambda worker when deployed, or as a
// one-shot local invocation for development.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/nutrigenlab/genereport/genereport"
	"github.com/nutrigenlab/genereport/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	handler := genereport.NewHandler(cfg, logger)

	if fn := os.Getenv("AWS_LAMBDA_FUNCTION_NAME"); fn != "" {
		logger.Info("invoked as lambda", zap.String("function", fn))
		lambda.Start(handler.Handle)
		return
	}

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		logger.Fatal("report query failed", zap.Error(err))
	}
	fmt.Println(resp.Body)
}

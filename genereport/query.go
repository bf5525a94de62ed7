package genereport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit issues the report query execution and returns the execution id
// assigned by Athena. Single shot; submission errors propagate unretried.
func (c *Client) Submit(ctx context.Context) (string, error) {
	in := &athena.StartQueryExecutionInput{
		QueryString:        aws.String(c.cfg.QueryString),
		ClientRequestToken: aws.String(uuid.NewString()),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(c.cfg.Database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(c.cfg.OutputLocation),
		},
	}
	if c.cfg.Workgroup != "" {
		in.WorkGroup = aws.String(c.cfg.Workgroup)
	}

	out, err := c.api.StartQueryExecution(ctx, in)
	if err != nil {
		return "", fmt.Errorf("failed to start query execution: %w", err)
	}

	queryID := aws.ToString(out.QueryExecutionId)
	c.log.Info("submitted query execution",
		zap.String("query_id", queryID),
		zap.String("database", c.cfg.Database),
	)
	return queryID, nil
}

// WaitForCompletion blocks until the execution reaches a terminal state,
// checking the status every PollInterval. The wait is bounded by
// PollTimeout and by cancellation of ctx.
func (c *Client) WaitForCompletion(ctx context.Context, queryID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.PollTimeout)
	defer cancel()

	for {
		out, err := c.api.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(queryID),
		})
		if err != nil {
			return fmt.Errorf("failed to get query execution: %w", err)
		}
		if out.QueryExecution == nil || out.QueryExecution.Status == nil {
			return fmt.Errorf("query execution %s has no status", queryID)
		}

		status := out.QueryExecution.Status
		c.log.Info("query execution state",
			zap.String("query_id", queryID),
			zap.String("state", string(status.State)),
		)

		switch status.State {
		case types.QueryExecutionStateSucceeded:
			return nil
		case types.QueryExecutionStateFailed:
			return &QueryFailedError{Reason: aws.ToString(status.StateChangeReason)}
		case types.QueryExecutionStateCancelled:
			return ErrQueryCancelled
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for query execution %s: %w", queryID, ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

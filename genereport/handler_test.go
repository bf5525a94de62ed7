package genereport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(api athenaAPI) *Handler {
	h := NewHandler(Config{
		Database:       "genomics",
		OutputLocation: "s3://results/",
		PollInterval:   time.Millisecond,
		PollTimeout:    time.Second,
	}, nil)
	h.newClient = func(_ context.Context, cfg Config) (*Client, error) {
		c := newTestClient(api)
		c.cfg = cfg
		return c, nil
	}
	return h
}

func TestHandle_EndToEnd(t *testing.T) {
	succeeded := statusSequenceOutput(types.QueryExecutionStateSucceeded)
	pages := []*athena.GetQueryResultsOutput{
		resultsPage(reportCols(), aws.String("page-2"),
			headerRow(),
			dataRow("MTHFR", "rs1801133", "T", "0.33", "smoking", "folate", "reduced activity", "cardiovascular"),
		),
		resultsPage(reportCols(), nil,
			dataRow("FTO", "rs9939609", "A", "0.42", "diet", "saturated fat", "appetite regulation", "obesity"),
		),
	}
	call := 0
	handler := newTestHandler(&fakeAthena{
		start: func(*athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
			return &athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("qe-123")}, nil
		},
		getExec: func(*athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
			return succeeded, nil
		},
		getResults: func(*athena.GetQueryResultsInput) (*athena.GetQueryResultsOutput, error) {
			out := pages[call]
			call++
			return out, nil
		},
	})

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "MTHFR", decoded[0]["gene"])
	assert.Equal(t, "rs1801133", decoded[0]["reference_number"])
	assert.Equal(t, "T", decoded[0]["risk_allele"])
	assert.Equal(t, "0.33", decoded[0]["maf"])
	assert.Equal(t, "smoking", decoded[0]["lifestyle_factor"])
	assert.Equal(t, "folate", decoded[0]["nutrient_effects"])
	assert.Equal(t, "reduced activity", decoded[0]["gene_effects"])
	assert.Equal(t, "cardiovascular", decoded[0]["condition_related"])
	assert.Equal(t, "FTO", decoded[1]["gene"])
}

func TestHandle_QueryFailure(t *testing.T) {
	handler := newTestHandler(&fakeAthena{
		start: func(*athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
			return &athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("qe-123")}, nil
		},
		getExec: func(*athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
			return &athena.GetQueryExecutionOutput{
				QueryExecution: &types.QueryExecution{
					Status: &types.QueryExecutionStatus{
						State:             types.QueryExecutionStateFailed,
						StateChangeReason: aws.String("TABLE_NOT_FOUND"),
					},
				},
			}, nil
		},
	})

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var failed *QueryFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "TABLE_NOT_FOUND", failed.Reason)
}

func TestHandle_EmptyReportBody(t *testing.T) {
	handler := newTestHandler(&fakeAthena{
		start: func(*athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
			return &athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("qe-123")}, nil
		},
		getExec: func(*athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
			return statusSequenceOutput(types.QueryExecutionStateSucceeded), nil
		},
		getResults: func(*athena.GetQueryResultsInput) (*athena.GetQueryResultsOutput, error) {
			return resultsPage(reportCols(), nil, headerRow()), nil
		},
	})

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", resp.Body)
}

func statusSequenceOutput(state types.QueryExecutionState) *athena.GetQueryExecutionOutput {
	return &athena.GetQueryExecutionOutput{
		QueryExecution: &types.QueryExecution{
			Status: &types.QueryExecutionStatus{State: state},
		},
	}
}

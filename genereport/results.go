package genereport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

// columnTypeVarchar is the only column type the report decoder supports.
const columnTypeVarchar = "varchar"

// FetchReport pages through the results of a completed execution and
// decodes every row, in fetch order, into ReportLines. Athena returns the
// column labels as the first row of the first page; that row is skipped.
func (c *Client) FetchReport(ctx context.Context, queryID string) ([]ReportLine, error) {
	lines := make([]ReportLine, 0)
	var token *string

	for page := 0; ; page++ {
		out, err := c.api.GetQueryResults(ctx, &athena.GetQueryResultsInput{
			QueryExecutionId: aws.String(queryID),
			NextToken:        token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get query results: %w", err)
		}
		if out.ResultSet == nil || out.ResultSet.ResultSetMetadata == nil {
			return nil, &SchemaError{Detail: "result set is missing column metadata"}
		}

		cols := out.ResultSet.ResultSetMetadata.ColumnInfo
		rows := out.ResultSet.Rows
		if page == 0 && len(rows) > 0 {
			rows = rows[1:]
		}

		for _, row := range rows {
			line, err := decodeRow(cols, row)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}

		if out.NextToken == nil {
			return lines, nil
		}
		token = out.NextToken
	}
}

// decodeRow maps one row's positional values onto a ReportLine using the
// page's column header. Only varchar columns with recognized labels are
// accepted; anything else fails the whole decode.
func decodeRow(cols []types.ColumnInfo, row types.Row) (ReportLine, error) {
	values := make(map[string]string, len(reportLabels))
	for i, col := range cols {
		label := aws.ToString(col.Name)
		if typ := aws.ToString(col.Type); typ != columnTypeVarchar {
			return ReportLine{}, &SchemaError{Column: label, Detail: fmt.Sprintf("unsupported column type %q", typ)}
		}
		if !recognizedLabel(label) {
			return ReportLine{}, &SchemaError{Column: label, Detail: "unrecognized column label"}
		}
		if i < len(row.Data) {
			values[label] = aws.ToString(row.Data[i].VarCharValue)
		}
	}
	return newReportLine(values)
}

func recognizedLabel(label string) bool {
	for _, l := range reportLabels {
		if l == label {
			return true
		}
	}
	return false
}

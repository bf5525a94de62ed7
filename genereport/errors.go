package genereport

import "errors"

// ErrQueryCancelled reports that the query execution was cancelled on the
// service side before it completed.
var ErrQueryCancelled = errors.New("query execution was cancelled")

// QueryFailedError reports a FAILED terminal state, carrying the reason
// string supplied by the service.
type QueryFailedError struct {
	Reason string
}

func (e *QueryFailedError) Error() string {
	if e.Reason == "" {
		return "query execution failed"
	}
	return "query execution failed: " + e.Reason
}

// SchemaError reports a result set that does not match the gene report
// shape: an unsupported column type, an unrecognized column label, or a
// required column missing from a row.
type SchemaError struct {
	Column string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return "result schema error: " + e.Detail
	}
	return "result schema error: column " + e.Column + ": " + e.Detail
}

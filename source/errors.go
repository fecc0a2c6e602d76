package source

import (
	"fmt"
	"strings"
)

// QueryExecutionError is a failed run of a query. It ends the stream
// without records and is never fatal.
type QueryExecutionError struct {
	Query string
	Err   error
}

func (e *QueryExecutionError) Error() string {
	// gqlerror.List ends every entry with a newline
	return fmt.Sprintf("query %s: %s", e.Query, strings.TrimSpace(e.Err.Error()))
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

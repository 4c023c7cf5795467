package dataset

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports a result table whose columns disagree
// with the first table of an aggregation. Never reconciled silently.
type SchemaMismatchError struct {
	Index int
	Want  []string
	Got   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("dataset: table %d schema mismatch: want [%s], got [%s]",
		e.Index, strings.Join(e.Want, " "), strings.Join(e.Got, " "))
}

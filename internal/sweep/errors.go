package sweep

import "errors"

// ErrEmptyRange indicates a sweep axis that produces no samples.
// This is a configuration error and is reported before any job runs.
var ErrEmptyRange = errors.New("sweep: range produces no samples")

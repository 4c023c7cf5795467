package modelcard

import "errors"

// ErrFetch indicates the model could not be retrieved from the remote
// source. Fatal: no dataset is produced without a model card.
var ErrFetch = errors.New("modelcard: remote fetch failed")

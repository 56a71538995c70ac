package model

import "errors"

// ErrInvalidProblem reports malformed problem data; it is returned before
// any tableau work starts.
var ErrInvalidProblem = errors.New("model: invalid problem")

package graphcore

import "errors"

// ErrEmptyInput is returned by BuildSnapshot when entries is empty and
// ShowIndex is false — the renderer requires at least one row.
var ErrEmptyInput = errors.New("graphcore: empty input")

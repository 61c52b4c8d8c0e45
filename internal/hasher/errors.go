package hasher

import "errors"

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)

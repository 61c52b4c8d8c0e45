package versioner

import "errors"

var (
	ErrIO                = errors.New("version table i/o failed")
	ErrPrecondition      = errors.New("read() and build() must run before compare()")
	ErrAlgorithmMismatch = errors.New("hash algorithms differ")
	ErrInvalidFormat     = errors.New("unknown output format")
	ErrRecordNotFound    = errors.New("version record not found")
	ErrNoStore           = errors.New("no record store configured")
)

package db

import "errors"

var (
	ErrBucketNotFound    = errors.New("bucket not found")
	ErrNilDB             = errors.New("database connection is nil")
	ErrNilRecord         = errors.New("version record is nil")
	ErrEmptyName         = errors.New("record name is empty")
	ErrUnknownSerializer = errors.New("unknown serializer")
)

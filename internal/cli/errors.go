package cli

import "errors"

var (
	ErrNoPaths        = errors.New("no tracked paths given")
	ErrVersionChanged = errors.New("version changed")
	ErrNotBoltStore   = errors.New("command requires the bolt store")
)

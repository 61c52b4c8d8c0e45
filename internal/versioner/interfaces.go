package versioner

// RecordStore persists the record of one tracked-file-set configuration.
// Load returns ErrRecordNotFound when nothing has been saved yet.
type RecordStore interface {
	Load() (*Record, error)
	Save(rec *Record) error
	Exists() (bool, error)
}

// LineObserver receives each raw line, terminator included, in file order.
type LineObserver func(line []byte)

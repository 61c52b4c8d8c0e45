package db

import "fileversion/internal/versioner"

// RecordStorage определяет интерфейс для хранения записей версий
type RecordStorage interface {
	SaveRecord(name string, rec *versioner.Record) error
	GetRecord(name string) (*versioner.Record, error)
	HasRecord(name string) (bool, error)
	DeleteRecord(name string) error
	Names() ([]string, error)
	History(name string) ([]HistoryEntry, error)
	Close() error
}

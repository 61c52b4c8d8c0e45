package db

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"fileversion/internal/versioner"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	RecordsBucket = "version_tables"
	HistoryBucket = "version_history"
)

// RecordDB хранит записи версий для нескольких наборов файлов, по одной на имя
type RecordDB struct {
	db         *bbolt.DB
	mu         sync.RWMutex
	serializer Serializer
	now        func() time.Time
}

// Config содержит конфигурацию для RecordDB
type Config struct {
	Path       string
	FileMode   os.FileMode
	Options    *bbolt.Options
	Serializer Serializer
}

// NewRecordDB открывает базу и создаёт бакеты при первом запуске
func NewRecordDB(cfg Config) (*RecordDB, error) {
	if cfg.Serializer == nil {
		cfg.Serializer = &JSONSerializer{}
	}

	if cfg.FileMode == 0 {
		cfg.FileMode = 0666
	}

	if cfg.Options == nil {
		cfg.Options = &bbolt.Options{Timeout: time.Second}
	}

	db, err := bbolt.Open(cfg.Path, cfg.FileMode, cfg.Options)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{RecordsBucket, HistoryBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close() // Закрываем БД в случае ошибки
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &RecordDB{
		db:         db,
		serializer: cfg.Serializer,
		now:        time.Now,
	}, nil
}

func (rdb *RecordDB) Close() error {
	if rdb.db == nil {
		return ErrNilDB
	}
	return rdb.db.Close()
}

// SaveRecord сохраняет запись и добавляет строку в историю
func (rdb *RecordDB) SaveRecord(name string, rec *versioner.Record) error {
	if name == "" {
		return ErrEmptyName
	}
	if rec == nil {
		return ErrNilRecord
	}

	data, err := rdb.serializer.Serialize(rec)
	if err != nil {
		return err
	}

	entry, err := rdb.serializer.Serialize(HistoryEntry{
		RunID:         uuid.New().String(),
		Version:       rec.Version,
		HashAlgorithm: rec.HashAlgorithm,
		Files:         len(rec.Files),
		SavedAt:       rdb.now().UTC(),
	})
	if err != nil {
		return err
	}

	rdb.mu.Lock()
	defer rdb.mu.Unlock()

	return rdb.db.Update(func(tx *bbolt.Tx) error {
		records, err := tx.CreateBucketIfNotExists([]byte(RecordsBucket))
		if err != nil {
			return err
		}
		if err := records.Put([]byte(name), data); err != nil {
			return err
		}

		history, err := tx.CreateBucketIfNotExists([]byte(HistoryBucket))
		if err != nil {
			return err
		}
		runs, err := history.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		seq, err := runs.NextSequence()
		if err != nil {
			return err
		}
		return runs.Put(sequenceKey(seq), entry)
	})
}

// GetRecord загружает запись по имени
func (rdb *RecordDB) GetRecord(name string) (*versioner.Record, error) {
	var rec versioner.Record

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(RecordsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return versioner.ErrRecordNotFound
		}

		if err := rdb.serializer.Deserialize(data, &rec); err != nil {
			return fmt.Errorf("%w: decode record %q: %w", versioner.ErrIO, name, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (rdb *RecordDB) HasRecord(name string) (bool, error) {
	var found bool

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(RecordsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}
		found = bucket.Get([]byte(name)) != nil
		return nil
	})
	return found, err
}

// DeleteRecord удаляет запись и её историю
func (rdb *RecordDB) DeleteRecord(name string) error {
	rdb.mu.Lock()
	defer rdb.mu.Unlock()

	return rdb.db.Update(func(tx *bbolt.Tx) error {
		if bucket := tx.Bucket([]byte(RecordsBucket)); bucket != nil {
			if err := bucket.Delete([]byte(name)); err != nil {
				return err
			}
		}
		history := tx.Bucket([]byte(HistoryBucket))
		if history == nil || history.Bucket([]byte(name)) == nil {
			return nil
		}
		return history.DeleteBucket([]byte(name))
	})
}

// Names возвращает имена всех сохранённых записей
func (rdb *RecordDB) Names() ([]string, error) {
	var names []string

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(RecordsBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})

	if err != nil {
		return nil, err
	}
	return names, nil
}

// History возвращает историю сохранений записи, от старых к новым
func (rdb *RecordDB) History(name string) ([]HistoryEntry, error) {
	var entries []HistoryEntry

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		history := tx.Bucket([]byte(HistoryBucket))
		if history == nil {
			return nil
		}
		runs := history.Bucket([]byte(name))
		if runs == nil {
			return nil
		}
		return runs.ForEach(func(_, v []byte) error {
			var entry HistoryEntry
			if err := rdb.serializer.Deserialize(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Store returns a versioner.RecordStore bound to one record name.
func (rdb *RecordDB) Store(name string) versioner.RecordStore {
	return &namedStore{db: rdb, name: name}
}

type namedStore struct {
	db   *RecordDB
	name string
}

func (s *namedStore) Load() (*versioner.Record, error) { return s.db.GetRecord(s.name) }

func (s *namedStore) Save(rec *versioner.Record) error { return s.db.SaveRecord(s.name, rec) }

func (s *namedStore) Exists() (bool, error) { return s.db.HasRecord(s.name) }

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

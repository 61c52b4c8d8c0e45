package db

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"time"
)

// HistoryEntry описывает одну запись версии, сохранённую в базе
type HistoryEntry struct {
	RunID         string    `json:"runId"`
	Version       string    `json:"version"`
	HashAlgorithm string    `json:"hashAlgorithm"`
	Files         int       `json:"files"`
	SavedAt       time.Time `json:"savedAt"`
}

// Serializer предоставляет интерфейс для сериализации/десериализации данных
type Serializer interface {
	Serialize(v interface{}) ([]byte, error)
	Deserialize(data []byte, v interface{}) error
}

// JSONSerializer пишет записи в том же виде, что и файл ревизий
type JSONSerializer struct{}

func (s *JSONSerializer) Serialize(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (s *JSONSerializer) Deserialize(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

const (
	SerializerJSON = "json"
	SerializerGob  = "gob"
)

// NewSerializer возвращает сериализатор по имени
func NewSerializer(name string) (Serializer, error) {
	switch name {
	case "", SerializerJSON:
		return &JSONSerializer{}, nil
	case SerializerGob:
		return &GobSerializer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSerializer, name)
	}
}

// GobSerializer реализует Serializer используя encoding/gob
type GobSerializer struct{}

func (s *GobSerializer) Serialize(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GobSerializer) Deserialize(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

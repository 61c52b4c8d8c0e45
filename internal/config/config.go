package config

import (
	"fmt"
	"os"
	"time"

	"fileversion/internal/db"
	"fileversion/internal/hasher"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	StoreJSON = "json"
	StoreBolt = "bolt"
)

type Config struct {
	Env           string   `yaml:"env" env:"FILEVERSION_ENV" env-default:"local"`
	HashAlgorithm string   `yaml:"hash_algorithm" env:"FILEVERSION_HASH" env-default:"md5"`
	Store         string   `yaml:"store" env:"FILEVERSION_STORE" env-default:"json"`
	RevisionFile  string   `yaml:"revision_file" env:"FILEVERSION_REVISION_FILE" env-default:".fileversion.json"`
	BoltPath      string   `yaml:"bolt_path" env:"FILEVERSION_BOLT_PATH" env-default:".fileversion.db"`
	RecordName    string   `yaml:"record_name" env:"FILEVERSION_RECORD" env-default:"default"`
	Serializer    string   `yaml:"serializer" env:"FILEVERSION_SERIALIZER" env-default:"json"`
	Write         bool     `yaml:"write" env:"FILEVERSION_WRITE"`
	HideUnchanged bool     `yaml:"hide_unchanged" env:"FILEVERSION_HIDE_UNCHANGED"`
	Indent        bool     `yaml:"indent" env:"FILEVERSION_INDENT"`
	Files         []string `yaml:"files"`
	ListFiles     []string `yaml:"list_files"`
	Dirs          []string `yaml:"dirs"`
	Watch         Watch    `yaml:"watch" env-prefix:"FILEVERSION_WATCH_"`
}

type Watch struct {
	Debounce       time.Duration `yaml:"debounce" env:"DEBOUNCE" env-default:"500ms"`
	IgnorePatterns []string      `yaml:"ignore_patterns"`
}

// Load reads the yaml file at path, applying env overrides and defaults. An
// empty path reads the environment only. The result is not validated: callers
// apply their own overrides first, then call Validate.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	} else {
		// check if file exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}

	switch c.Store {
	case StoreJSON:
		if c.RevisionFile == "" {
			return fmt.Errorf("revision_file is required for the json store")
		}
	case StoreBolt:
		if c.BoltPath == "" || c.RecordName == "" {
			return fmt.Errorf("bolt_path and record_name are required for the bolt store")
		}
		if _, err := db.NewSerializer(c.Serializer); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if !hasher.Supported(c.HashAlgorithm) {
		return fmt.Errorf("%w: %q", hasher.ErrUnsupportedAlgorithm, c.HashAlgorithm)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Collection names used by the game.
const (
	Players   = "players"
	Guilds    = "guilds"
	Questions = "questions"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// Collection is a keyed set of JSON documents. Writes are whole-document and
// last writer wins.
type Collection interface {
	Put(ctx context.Context, id string, doc []byte) error
	// Get returns ErrNotFound when id is absent.
	Get(ctx context.Context, id string) ([]byte, error)
	// Delete of an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// List returns ids in ascending order.
	List(ctx context.Context) ([]string, error)
}

type Store interface {
	Collection(name string) Collection
	Close() error
}

type Config struct {
	Backend       string `mapstructure:"backend"`
	DataDir       string `mapstructure:"data_dir"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

// Open builds the configured backend. It is called once at startup.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		return OpenFileStore(cfg.DataDir)
	case BackendSQLite:
		return OpenSQLiteStore(ctx, cfg.SQLitePath)
	case BackendRedis:
		return OpenRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ValidateID rejects ids that cannot be used as a file name.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

type batchPutter interface {
	putAll(ctx context.Context, docs map[string][]byte) error
}

// PutAll writes several documents, atomically when the backend supports it.
func PutAll(ctx context.Context, c Collection, docs map[string][]byte) error {
	if b, ok := c.(batchPutter); ok {
		return b.putAll(ctx, docs)
	}
	for id, doc := range docs {
		if err := c.Put(ctx, id, doc); err != nil {
			return err
		}
	}
	return nil
}

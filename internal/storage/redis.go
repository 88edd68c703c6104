package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "edurpg"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore is the remote document store. Each document is a string key
// <prefix>:<collection>:<id>; a set <prefix>:<collection> indexes the ids.
type RedisStore struct {
	client *goredis.Client
	prefix string
}

func OpenRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis store: address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) Collection(name string) Collection {
	return &redisCollection{client: s.client, key: s.prefix + ":" + name}
}

func (s *RedisStore) Close() error { return s.client.Close() }

type redisCollection struct {
	client *goredis.Client
	key    string
}

func (c *redisCollection) docKey(id string) string { return c.key + ":" + id }

func (c *redisCollection) Put(ctx context.Context, id string, doc []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	_, err := c.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, c.docKey(id), doc, 0)
		p.SAdd(ctx, c.key, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

func (c *redisCollection) putAll(ctx context.Context, docs map[string][]byte) error {
	for id := range docs {
		if err := ValidateID(id); err != nil {
			return err
		}
	}
	_, err := c.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for id, doc := range docs {
			p.Set(ctx, c.docKey(id), doc, 0)
			p.SAdd(ctx, c.key, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

func (c *redisCollection) Get(ctx context.Context, id string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.docKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (c *redisCollection) Delete(ctx context.Context, id string) error {
	_, err := c.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, c.docKey(id))
		p.SRem(ctx, c.key, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

func (c *redisCollection) List(ctx context.Context) ([]string, error) {
	ids, err := c.client.SMembers(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

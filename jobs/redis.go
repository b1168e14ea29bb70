package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps job records as JSON values under a key prefix. Useful
// when several replicas share one status view; the per-job single-writer
// rule still holds, redis just provides the shared durability.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStoreFromEnv connects using REDIS_ADDR, REDIS_PASS and REDIS_DB,
// with JOB_KEY_PREFIX and JOB_TTL_SECONDS controlling the keyspace.
func NewRedisStoreFromEnv() (*RedisStore, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	db := 0
	if d := os.Getenv("REDIS_DB"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			db = n
		}
	}

	prefix := os.Getenv("JOB_KEY_PREFIX")
	if prefix == "" {
		prefix = "jobs:"
	}

	var ttl time.Duration
	if t := os.Getenv("JOB_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Save(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := s.client.Set(ctx, s.key(job.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write job %s: %w", job.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Job, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", id, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Package redis implements store.Store on top of a Redis server via
// go-redis. This is the intended production backend: SETNX-with-TTL and
// INCR give the coordination protocol its cross-process atomicity.
package redis

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/recache-dev/recache/store"
)

// Environment variables consulted by FromEnv. Explicit Config fields take
// priority over the environment, which takes priority over the defaults.
const (
	EnvHost     = "REDIS_SERVICE_HOST"
	EnvPort     = "REDIS_SERVICE_PORT"
	EnvDatabase = "REDIS_SERVICE_DATABASE"
	EnvPassword = "REDIS_SERVICE_PASSWORD"
)

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	// Client, when set, is used as-is and the connection fields below are
	// ignored. Set CloseClient to true only if this store exclusively owns it.
	Client      goredis.UniversalClient
	CloseClient bool

	// Connection fields. Zero values fall back to the REDIS_SERVICE_*
	// environment variables, then to localhost:6379 db 0 with no password.
	Host     string
	Port     int
	DB       int
	Password string
}

// FromEnv returns a Config populated from the REDIS_SERVICE_* environment
// variables, with the usual localhost defaults where unset.
func FromEnv() Config {
	return Config{
		Host:     envString(EnvHost, "localhost"),
		Port:     envInt(EnvPort, 6379),
		DB:       envInt(EnvDatabase, 0),
		Password: os.Getenv(EnvPassword),
	}
}

// New builds a Redis store. When cfg.Client is nil a client is constructed
// from cfg's connection fields (env-backed where zero) and owned by the
// returned store. The client dials lazily; New never touches the network.
func New(cfg Config) (*Redis, error) {
	if cfg.Client != nil {
		return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
	}

	env := FromEnv()
	if cfg.Host == "" {
		cfg.Host = env.Host
	}
	if cfg.Port == 0 {
		cfg.Port = env.Port
	}
	if cfg.DB == 0 {
		cfg.DB = env.DB
	}
	if cfg.Password == "" {
		cfg.Password = env.Password
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &Redis{rdb: client, closeClient: true}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTL means "no expiry" per store contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0
	}
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *Redis) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

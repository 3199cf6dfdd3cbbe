package redis

import (
	"context"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDatabase, "")
	t.Setenv(EnvPassword, "")

	cfg := FromEnv()
	if cfg.Host != "localhost" || cfg.Port != 6379 || cfg.DB != 0 || cfg.Password != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestFromEnvReadsEnvironment(t *testing.T) {
	t.Setenv(EnvHost, "cache.internal")
	t.Setenv(EnvPort, "6380")
	t.Setenv(EnvDatabase, "3")
	t.Setenv(EnvPassword, "hunter2")

	cfg := FromEnv()
	if cfg.Host != "cache.internal" || cfg.Port != 6380 || cfg.DB != 3 || cfg.Password != "hunter2" {
		t.Fatalf("env config = %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbagePort(t *testing.T) {
	t.Setenv(EnvPort, "not-a-number")
	if cfg := FromEnv(); cfg.Port != 6379 {
		t.Fatalf("Port = %d, want default on parse failure", cfg.Port)
	}
}

func TestNewBuildsOwnedClient(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDatabase, "")
	t.Setenv(EnvPassword, "")

	// explicit fields beat the environment; the client dials lazily so no
	// server is needed here
	s, err := New(Config{Host: "example.test", Port: 7000})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.closeClient {
		t.Fatal("store must own a client it constructed")
	}
	ctx := context.Background()
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("repeated Close: %v", err)
	}
}

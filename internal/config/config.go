package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	ListenAddr string // e.g. ":4000"

	// Store. The address itself (MONGO_URI) is read by the store manager
	// when it first connects, not captured here.
	ConnectTimeout time.Duration // dial + ping budget
	ConnectOnStart bool          // connect before serving traffic

	// Logging
	LogLevel string // debug|info|warn|error
	LogJSON  bool
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func FromEnv() Config {
	c := Config{}

	c.ListenAddr = getenv("HTTP_LISTEN_ADDR", ":4000")
	c.ConnectTimeout = getenvd("STORE_CONNECT_TIMEOUT", 10*time.Second)
	c.ConnectOnStart = getenvb("STORE_CONNECT_ON_START", false)

	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogJSON = getenvb("LOG_JSON", false)

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvb(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvd(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

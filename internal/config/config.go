// Package config loads server settings from flags, falling back to
// environment variables and then to defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr                string
	AllowOrigins        string
	ReadBufferSize      int
	WriteBufferSize     int
	MatchmakingInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		ReadBufferSize:      1024,
		WriteBufferSize:     1024,
		MatchmakingInterval: time.Second,
	}
}

// Load parses args (without the program name). Environment variables
// CHESS_ADDR, CHESS_ALLOW_ORIGINS and CHESS_MATCHMAKING_INTERVAL override the
// defaults; flags override both.
func Load(args []string) (Config, error) {
	cfg := Default()
	if v := os.Getenv("CHESS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHESS_ALLOW_ORIGINS"); v != "" {
		cfg.AllowOrigins = v
	}
	if v := os.Getenv("CHESS_MATCHMAKING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: CHESS_MATCHMAKING_INTERVAL: %w", ErrInvalidConfig, err)
		}
		cfg.MatchmakingInterval = d
	}

	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma separated CORS and websocket origins")
	fs.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer size in bytes")
	fs.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer size in bytes")
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", cfg.MatchmakingInterval, "how often queued players are paired")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args())
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0:
		return fmt.Errorf("%w: websocket buffer sizes must be positive", ErrInvalidConfig)
	case c.MatchmakingInterval <= 0:
		return fmt.Errorf("%w: matchmaking interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowOrigins into its entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

package config

import (
	"testing"
	"time"

	"github.com/benbeisheim/chess-server/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHESS_ADDR", "")
	t.Setenv("CHESS_ALLOW_ORIGINS", "")
	t.Setenv("CHESS_MATCHMAKING_INTERVAL", "")

	cfg, err := Load(nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, Default())
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHESS_MATCHMAKING_INTERVAL", "250ms")

	cfg, err := Load([]string{"-addr", ":9090", "-ws-read-buffer", "4096"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Addr, ":9090")
	testutil.AssertEqual(t, cfg.ReadBufferSize, 4096)
	testutil.AssertEqual(t, cfg.WriteBufferSize, 1024)
	testutil.AssertEqual(t, cfg.MatchmakingInterval, 250*time.Millisecond)
	testutil.AssertEqual(t, cfg.Origins(), []string{"https://a.example", "https://b.example"})
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CHESS_ADDR", "")
	t.Setenv("CHESS_ALLOW_ORIGINS", "")
	t.Setenv("CHESS_MATCHMAKING_INTERVAL", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-verbose"}},
		{name: "bad duration", args: []string{"-matchmaking-interval", "soon"}},
		{name: "zero interval", args: []string{"-matchmaking-interval", "0s"}},
		{name: "negative buffer", args: []string{"-ws-write-buffer", "-1"}},
		{name: "empty addr", args: []string{"-addr", ""}},
		{name: "positional", args: []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			testutil.AssertErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("CHESS_MATCHMAKING_INTERVAL", "often")

	_, err := Load(nil)
	testutil.AssertErrorIs(t, err, ErrInvalidConfig)
}

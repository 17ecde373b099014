package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-server/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	broken   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// lastState decodes the most recent gameState message.
func (c *fakeConn) lastState(t *testing.T) MatchState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatal("no messages received")
	}
	msg := c.messages[len(c.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type = %q; want %q", msg.Type, ws.MessageTypeGameState)
	}
	var state MatchState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func req(fromRow, fromCol, toRow, toCol int) MoveRequest {
	return MoveRequest{From: Square{fromRow, fromCol}, To: Square{toRow, toCol}}
}

// seatedMatch returns a match with alice as White and bob as Black.
func seatedMatch(t *testing.T) *Match {
	t.Helper()
	m := NewMatch("m1", "test")
	if _, err := m.Join("alice", PlayerColorWhite); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Join("bob", PlayerColorBlack); err != nil {
		t.Fatal(err)
	}
	return m
}

// versions decodes the version of every gameState message, in arrival order.
func (c *fakeConn) versions(t *testing.T) []int64 {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []int64
	for _, msg := range c.messages {
		if msg.Type != ws.MessageTypeGameState {
			continue
		}
		var state MatchState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		out = append(out, state.Version)
	}
	return out
}

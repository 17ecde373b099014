package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/store"
	"github.com/benbeisheim/chess-server/internal/ws"
)

// Connection is the part of a websocket connection a match writes to.
type Connection interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific match. mu also serializes writes, since a
// websocket connection allows one writer at a time. Lock order is Match.mu
// before MatchConnections.mu.
type MatchConnections struct {
	connections map[string]Connection // playerID -> connection
	mu          sync.Mutex
}

func NewMatchConnections() *MatchConnections {
	return &MatchConnections{
		connections: make(map[string]Connection),
	}
}

// Match is one hosted game: the engine state, who sits at each color, who is
// watching, and the live connections. All engine access goes through mu.
type Match struct {
	ID   string
	Name string

	mu          sync.Mutex
	game        *chess.Game
	white       string
	black       string
	observers   map[string]bool
	history     []chess.Move
	version     int64
	connections *MatchConnections
}

type Players struct {
	White     ClientPlayer `json:"white"`
	Black     ClientPlayer `json:"black"`
	Observers int          `json:"observers"`
}

type MatchState struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Board       BoardState   `json:"boardState"`
	ToMove      chess.Color  `json:"toMove"`
	Status      chess.Status `json:"status"`
	IsCheck     bool         `json:"isCheck"`
	Winner      chess.Color  `json:"winner,omitempty"`
	LastMove    *chess.Move  `json:"lastMove"`
	MoveHistory []chess.Move `json:"moveHistory"`
	Players     Players      `json:"players"`
	Version     int64        `json:"version"`
}

type MatchSummary struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	White  string       `json:"white"`
	Black  string       `json:"black"`
	ToMove chess.Color  `json:"toMove"`
	Status chess.Status `json:"status"`
	Moves  int          `json:"moves"`
}

// persistedMatch is the JSON kept in store.Record.State.
type persistedMatch struct {
	Game      *chess.Game  `json:"game"`
	History   []chess.Move `json:"history,omitempty"`
	Observers []string     `json:"observers,omitempty"`
}

// NewMatch returns a match set up at the standard opening.
func NewMatch(id, name string) *Match {
	game := chess.NewGame()
	game.ResetBoard()
	return newMatch(id, name, game)
}

func newMatch(id, name string, game *chess.Game) *Match {
	return &Match{
		ID:          id,
		Name:        name,
		game:        game,
		observers:   make(map[string]bool),
		history:     make([]chess.Move, 0),
		connections: NewMatchConnections(),
	}
}

// RestoreMatch rebuilds a match from its stored record.
func RestoreMatch(rec store.Record) (*Match, error) {
	var pm persistedMatch
	if err := json.Unmarshal([]byte(rec.State), &pm); err != nil {
		return nil, fmt.Errorf("restore match %s: %w", rec.ID, err)
	}
	if pm.Game == nil {
		return nil, fmt.Errorf("restore match %s: missing game state", rec.ID)
	}
	m := newMatch(rec.ID, rec.Name, pm.Game)
	m.white = rec.WhitePlayer
	m.black = rec.BlackPlayer
	m.version = rec.Version
	if pm.History != nil {
		m.history = pm.History
	}
	for _, id := range pm.Observers {
		m.observers[id] = true
	}
	return m, nil
}

// Record serializes the match for the store.
func (m *Match) Record() (store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	observers := make([]string, 0, len(m.observers))
	for id := range m.observers {
		observers = append(observers, id)
	}
	sort.Strings(observers)

	state, err := json.Marshal(persistedMatch{
		Game:      m.game,
		History:   m.history,
		Observers: observers,
	})
	if err != nil {
		return store.Record{}, fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	return store.Record{
		ID:          m.ID,
		Name:        m.Name,
		WhitePlayer: m.white,
		BlackPlayer: m.black,
		State:       string(state),
		Version:     m.version,
	}, nil
}

// Join seats playerID at color, or adds them as an observer when color is
// PlayerColorObserver. Rejoining one's own seat is a no-op.
func (m *Match) Join(playerID string, color PlayerColor) (PlayerColor, error) {
	if playerID == "" {
		return "", fmt.Errorf("%w: empty player id", ErrInvalidRequest)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	switch color {
	case PlayerColorWhite:
		return color, m.claimSeat(&m.white, playerID)
	case PlayerColorBlack:
		return color, m.claimSeat(&m.black, playerID)
	case PlayerColorObserver:
		if !m.observers[playerID] {
			m.observers[playerID] = true
			m.version++
		}
		return color, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
}

func (m *Match) claimSeat(seat *string, playerID string) error {
	if *seat == playerID {
		return nil
	}
	if *seat != "" {
		return ErrSeatTaken
	}
	*seat = playerID
	m.version++
	return nil
}

// JoinAny seats playerID at the first free color.
func (m *Match) JoinAny(playerID string) (PlayerColor, error) {
	if playerID == "" {
		return "", fmt.Errorf("%w: empty player id", ErrInvalidRequest)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	switch playerID {
	case m.white:
		return PlayerColorWhite, nil
	case m.black:
		return PlayerColorBlack, nil
	}
	if m.white == "" {
		return PlayerColorWhite, m.claimSeat(&m.white, playerID)
	}
	if m.black == "" {
		return PlayerColorBlack, m.claimSeat(&m.black, playerID)
	}
	return "", ErrGameFull
}

func (m *Match) IsPlayerInGame(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.isPlayerInGame(playerID)
}

func (m *Match) isPlayerInGame(playerID string) bool {
	return playerID != "" && (playerID == m.white || playerID == m.black)
}

func (m *Match) isParticipant(playerID string) bool {
	return m.isPlayerInGame(playerID) || m.observers[playerID]
}

// seatColor reports the color playerID moves. A player holding both seats
// moves whichever side is to play.
func (m *Match) seatColor(playerID string) (chess.Color, bool) {
	switch {
	case !m.isPlayerInGame(playerID):
		return "", false
	case m.white == playerID && m.black == playerID:
		return m.game.Turn(), true
	case m.white == playerID:
		return chess.White, true
	default:
		return chess.Black, true
	}
}

// MakeMove applies req for playerID and broadcasts the resulting state to
// every connection of the match. The broadcast happens under the match lock
// so connections see states in move order.
func (m *Match) MakeMove(playerID string, req MoveRequest) (MatchState, error) {
	move, err := req.ToMove()
	if err != nil {
		return MatchState{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	color, ok := m.seatColor(playerID)
	if !ok {
		return MatchState{}, ErrNotAPlayer
	}
	if m.game.Status().IsOver() {
		return MatchState{}, ErrGameOver
	}
	if color != m.game.Turn() {
		return MatchState{}, ErrNotYourTurn
	}
	if err := m.game.MakeMove(move); err != nil {
		return MatchState{}, fmt.Errorf("move %s: %w", move, err)
	}
	m.history = append(m.history, move)
	m.version++

	state := m.stateLocked()
	m.broadcast(state)
	return state, nil
}

func (m *Match) ValidMoves(sq Square) ([]chess.Move, error) {
	pos, err := sq.Position()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.game.ValidMoves(pos), nil
}

func (m *Match) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stateLocked()
}

func (m *Match) stateLocked() MatchState {
	turn := m.game.Turn()
	state := MatchState{
		ID:          m.ID,
		Name:        m.Name,
		Board:       newBoardState(m.game),
		ToMove:      turn,
		Status:      m.game.Status(),
		IsCheck:     m.game.IsInCheck(turn),
		MoveHistory: append([]chess.Move{}, m.history...),
		Players: Players{
			White:     ClientPlayer{ID: m.white, Color: PlayerColorWhite},
			Black:     ClientPlayer{ID: m.black, Color: PlayerColorBlack},
			Observers: len(m.observers),
		},
		Version: m.version,
	}
	if state.Status == chess.StatusCheckmate {
		state.Winner = turn.Opposite()
	}
	if last, ok := m.game.Board().LastMove(); ok {
		state.LastMove = &last
	}
	return state
}

func (m *Match) Summary() MatchSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MatchSummary{
		ID:     m.ID,
		Name:   m.Name,
		White:  m.white,
		Black:  m.black,
		ToMove: m.game.Turn(),
		Status: m.game.Status(),
		Moves:  len(m.history),
	}
}

// RegisterConnection attaches conn for a seated player or observer and sends
// it the current state. A second connection for the same player is closed
// and rejected.
func (m *Match) RegisterConnection(playerID string, conn Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isParticipant(playerID) {
		return ErrNotAuthorized
	}
	state := m.stateLocked()

	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	if _, exists := m.connections.connections[playerID]; exists {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return ErrConnectionExists
	}
	m.connections.connections[playerID] = conn
	m.sendLocked(playerID, conn, state)
	return nil
}

// UnregisterConnection detaches conn, leaving a newer connection of the same
// player in place.
func (m *Match) UnregisterConnection(playerID string, conn Connection) {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	if current, exists := m.connections.connections[playerID]; exists && current == conn {
		delete(m.connections.connections, playerID)
	}
}

func (m *Match) ConnectionCount() int {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	return len(m.connections.connections)
}

// Send writes msg to playerID's connection, if any.
func (m *Match) Send(playerID string, msg ws.Message) error {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	conn, ok := m.connections.connections[playerID]
	if !ok {
		return nil
	}
	return conn.WriteJSON(msg)
}

func (m *Match) broadcast(state MatchState) {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	for playerID, conn := range m.connections.connections {
		m.sendLocked(playerID, conn, state)
	}
}

// sendLocked drops connections that fail to take the write.
func (m *Match) sendLocked(playerID string, conn Connection, state MatchState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Printf("match %s: encode state: %v", m.ID, err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("match %s: failed to send state to player %s: %v", m.ID, playerID, err)
		delete(m.connections.connections, playerID)
	}
}

// CloseConnections sends a close frame to every connection and forgets them.
func (m *Match) CloseConnections() {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	for playerID, conn := range m.connections.connections {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"),
		)
		conn.Close()
		delete(m.connections.connections, playerID)
	}
}

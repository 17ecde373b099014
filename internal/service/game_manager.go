package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/store"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager owns the live matches, mirrors every change into the store and
// pairs queued players into new matches.
type GameManager struct {
	games   map[string]*model.Match
	queue   *model.Queue
	matches map[string]model.MatchFoundEvent // playerID -> last match found
	store   store.Store
	mu      sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewGameManager(st store.Store, matchmakingInterval time.Duration) *GameManager {
	gm := &GameManager{
		games:   make(map[string]*model.Match),
		queue:   model.NewQueue(),
		matches: make(map[string]model.MatchFoundEvent),
		store:   st,
		done:    make(chan struct{}),
	}

	gm.wg.Add(1)
	go gm.processMatchmaking(matchmakingInterval)

	return gm
}

// Close stops the matchmaking loop and closes every live connection.
func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
	gm.wg.Wait()

	gm.mu.RLock()
	defer gm.mu.RUnlock()
	for _, game := range gm.games {
		game.CloseConnections()
	}
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	defer gm.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			for gm.queue.Size() >= 2 {
				if err := gm.pairNext(); err != nil {
					log.Printf("matchmaking: %v", err)
				}
			}
		}
	}
}

// pairNext starts a match for the two longest-waiting players.
func (gm *GameManager) pairNext() error {
	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return nil
	}

	gameID := uuid.New().String()
	game := model.NewMatch(gameID, fmt.Sprintf("%s vs %s", player1.ID, player2.ID))
	p1Color, err := game.JoinAny(player1.ID)
	if err != nil {
		return fmt.Errorf("seat %s: %w", player1.ID, err)
	}
	p2Color, err := game.JoinAny(player2.ID)
	if err != nil {
		return fmt.Errorf("seat %s: %w", player2.ID, err)
	}
	if err := gm.persist(game); err != nil {
		return err
	}

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.matches[player1.ID] = model.MatchFoundEvent{GameID: gameID, Color: p1Color}
	gm.matches[player2.ID] = model.MatchFoundEvent{GameID: gameID, Color: p2Color}
	gm.mu.Unlock()

	log.Printf("matchmaking: paired %s and %s into game %s", player1.ID, player2.ID, gameID)
	return nil
}

func (gm *GameManager) persist(game *model.Match) error {
	rec, err := game.Record()
	if err != nil {
		return err
	}
	if err := gm.store.Save(rec); err != nil {
		return fmt.Errorf("save game %s: %w", game.ID, err)
	}
	return nil
}

func (gm *GameManager) CreateGame(name string) (string, error) {
	gameID := uuid.New().String()
	if name == "" {
		name = "game " + gameID[:8]
	}
	game := model.NewMatch(gameID, name)
	if err := gm.persist(game); err != nil {
		return "", err
	}

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()

	return gameID, nil
}

// GetGame returns a live match, rehydrating it from the store when it is only
// known there.
func (gm *GameManager) GetGame(gameID string) (*model.Match, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}

	rec, err := gm.store.Load(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	restored, err := model.RestoreMatch(rec)
	if err != nil {
		return nil, err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if game, exists := gm.games[rec.ID]; exists {
		return game, nil
	}
	gm.games[rec.ID] = restored
	return restored, nil
}

// ListGames summarizes every stored match, ordered by name then id.
func (gm *GameManager) ListGames() ([]model.MatchSummary, error) {
	records, err := gm.store.List()
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	summaries := make([]model.MatchSummary, 0, len(records))
	for _, rec := range records {
		game, err := gm.GetGame(rec.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, game.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string, color model.PlayerColor) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	joined, err := game.Join(playerID, color)
	if err != nil {
		return "", err
	}
	if err := gm.persist(game); err != nil {
		return "", err
	}
	return joined, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.MatchState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return game.State(), nil
}

func (gm *GameManager) ValidMoves(gameID string, sq model.Square) ([]chess.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.ValidMoves(sq)
}

func (gm *GameManager) MakeMove(gameID, playerID string, req model.MoveRequest) (model.MatchState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	state, err := game.MakeMove(playerID, req)
	if err != nil {
		return model.MatchState{}, err
	}
	if err := gm.persist(game); err != nil {
		return model.MatchState{}, err
	}
	return state, nil
}

// DeleteGame closes the match's connections and removes it everywhere.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if exists {
		game.CloseConnections()
	}
	if err := gm.store.Delete(gameID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

// JoinMatchmaking queues playerID and forgets any earlier match found for
// them.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	delete(gm.matches, playerID)
	gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) error {
	return gm.queue.Remove(playerID)
}

type MatchmakingStatus struct {
	Queued bool                   `json:"queued"`
	Match  *model.MatchFoundEvent `json:"match,omitempty"`
}

func (gm *GameManager) MatchmakingStatus(playerID string) MatchmakingStatus {
	status := MatchmakingStatus{Queued: gm.queue.Contains(playerID)}

	gm.mu.RLock()
	defer gm.mu.RUnlock()
	if event, ok := gm.matches[playerID]; ok {
		status.Match = &event
	}
	return status
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn model.Connection) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn model.Connection) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

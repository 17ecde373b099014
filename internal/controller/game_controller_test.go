package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/store"
	"github.com/benbeisheim/chess-server/internal/testutil"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gm := service.NewGameManager(store.NewMemoryStore(), 5*time.Millisecond)
	t.Cleanup(gm.Close)
	gs := service.NewGameService(gm)

	app := fiber.New()
	RegisterRoutes(app, NewGameController(gs), NewWebSocketController(gs), websocket.Config{})
	return app
}

// call performs a request as player and decodes the JSON response into out
// when out is non-nil.
func call(t *testing.T, app *fiber.App, method, target, player, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

type errorResponse struct {
	Error string `json:"error"`
}

func createSeatedGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	var created struct {
		GameID string `json:"gameId"`
	}
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/create", "alice", `{"name":"friendly"}`, &created), fiber.StatusCreated)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/"+created.GameID, "alice", `{"color":"white"}`, nil), fiber.StatusOK)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/"+created.GameID, "bob", `{"color":"black"}`, nil), fiber.StatusOK)
	return created.GameID
}

func TestRequiresPlayerID(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	var resp errorResponse
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/list", "", "", &resp), fiber.StatusUnauthorized)
	testutil.AssertTrue(t, resp.Error != "")
}

func TestCreateListAndGetGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createSeatedGame(t, app)

	var list struct {
		Games []model.MatchSummary `json:"games"`
	}
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/list", "carol", "", &list), fiber.StatusOK)
	testutil.AssertEqual(t, len(list.Games), 1)
	testutil.AssertEqual(t, list.Games[0].Name, "friendly")
	testutil.AssertEqual(t, list.Games[0].White, "alice")

	var state model.MatchState
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+id, "carol", "", &state), fiber.StatusOK)
	testutil.AssertEqual(t, state.ID, id)
	testutil.AssertEqual(t, state.ToMove, chess.White)
	testutil.AssertEqual(t, state.Status, chess.StatusActive)
	testutil.AssertEqual(t, len(state.Board.Pieces), 32)

	var missing errorResponse
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/nope", "carol", "", &missing), fiber.StatusNotFound)
	testutil.AssertEqual(t, missing.Error, service.ErrGameNotFound.Error())
}

func TestCreateGameWithoutBody(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	var created struct {
		GameID string `json:"gameId"`
	}
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/create", "alice", "", &created), fiber.StatusCreated)
	testutil.AssertTrue(t, created.GameID != "")

	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/create", "alice", "{broken", nil), fiber.StatusBadRequest)
}

func TestJoinGameStatuses(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createSeatedGame(t, app)

	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/"+id, "carol", `{"color":"white"}`, nil), fiber.StatusConflict)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/"+id, "carol", `{"color":"green"}`, nil), fiber.StatusBadRequest)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/missing", "carol", "", nil), fiber.StatusNotFound)

	var joined struct {
		Color model.PlayerColor `json:"color"`
	}
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/join/"+id, "carol", "", &joined), fiber.StatusOK)
	testutil.AssertEqual(t, joined.Color, model.PlayerColorObserver)
}

func TestMakeMoveStatuses(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createSeatedGame(t, app)
	target := "/api/game/" + id + "/move"
	e2e4 := `{"from":{"row":2,"col":5},"to":{"row":4,"col":5}}`

	tests := []struct {
		name   string
		player string
		body   string
		want   int
	}{
		{name: "stranger", player: "mallory", body: e2e4, want: fiber.StatusForbidden},
		{name: "wrong turn", player: "bob", body: `{"from":{"row":7,"col":5},"to":{"row":5,"col":5}}`, want: fiber.StatusForbidden},
		{name: "off board", player: "alice", body: `{"from":{"row":0,"col":5},"to":{"row":4,"col":5}}`, want: fiber.StatusBadRequest},
		{name: "illegal", player: "alice", body: `{"from":{"row":2,"col":5},"to":{"row":5,"col":5}}`, want: fiber.StatusBadRequest},
		{name: "malformed", player: "alice", body: `{"from":`, want: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, call(t, app, "POST", target, tt.player, tt.body, nil), tt.want, tt.name)
	}

	var state model.MatchState
	testutil.AssertEqual(t, call(t, app, "POST", target, "alice", e2e4, &state), fiber.StatusOK)
	testutil.AssertEqual(t, state.ToMove, chess.Black)
	testutil.AssertEqual(t, state.LastMove, &chess.Move{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 4, Col: 5}})
}

func TestGetValidMoves(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createSeatedGame(t, app)

	var moves []chess.Move
	testutil.AssertEqual(t, call(t, app, "GET", fmt.Sprintf("/api/game/%s/moves?row=1&col=7", id), "carol", "", &moves), fiber.StatusOK)
	testutil.AssertEqual(t, moves, []chess.Move{
		{Start: chess.Position{Row: 1, Col: 7}, End: chess.Position{Row: 3, Col: 6}},
		{Start: chess.Position{Row: 1, Col: 7}, End: chess.Position{Row: 3, Col: 8}},
	})

	// A boxed-in rook has no moves; the body is an empty array, not null.
	var none []chess.Move
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+id+"/moves?row=1&col=1", "carol", "", &none), fiber.StatusOK)
	testutil.AssertEqual(t, none, []chess.Move{})

	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+id+"/moves?row=9&col=1", "carol", "", nil), fiber.StatusBadRequest)
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+id+"/moves", "carol", "", nil), fiber.StatusBadRequest)
}

func TestDeleteGameRoute(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createSeatedGame(t, app)

	testutil.AssertEqual(t, call(t, app, "DELETE", "/api/game/"+id, "carol", "", nil), fiber.StatusForbidden)
	testutil.AssertEqual(t, call(t, app, "DELETE", "/api/game/"+id, "bob", "", nil), fiber.StatusNoContent)
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+id, "bob", "", nil), fiber.StatusNotFound)
}

func TestMatchmakingRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/matchmaking/join", "alice", "", nil), fiber.StatusOK)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/matchmaking/join", "alice", "", nil), fiber.StatusConflict)
	testutil.AssertEqual(t, call(t, app, "DELETE", "/api/game/matchmaking/join", "alice", "", nil), fiber.StatusOK)
	testutil.AssertEqual(t, call(t, app, "DELETE", "/api/game/matchmaking/join", "alice", "", nil), fiber.StatusNotFound)

	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/matchmaking/join", "alice", "", nil), fiber.StatusOK)
	testutil.AssertEqual(t, call(t, app, "POST", "/api/game/matchmaking/join", "bob", "", nil), fiber.StatusOK)

	var status service.MatchmakingStatus
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status = service.MatchmakingStatus{}
		testutil.AssertEqual(t, call(t, app, "GET", "/api/game/matchmaking/status", "bob", "", &status), fiber.StatusOK)
		if status.Match != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if status.Match == nil {
		t.Fatal("bob was not matched")
	}
	testutil.AssertEqual(t, status.Match.Color, model.PlayerColorBlack)

	var state model.MatchState
	testutil.AssertEqual(t, call(t, app, "GET", "/api/game/"+status.Match.GameID, "bob", "", &state), fiber.StatusOK)
	testutil.AssertEqual(t, state.Players.White.ID, "alice")
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/ws/game/any?playerId=alice", nil)
	resp, err := app.Test(req)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)
}

func TestErrorStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("move e2e5: %w", chess.ErrInvalidMove), http.StatusBadRequest},
		{fmt.Errorf("%w: %w", model.ErrInvalidRequest, chess.ErrInvalidPosition), http.StatusBadRequest},
		{model.ErrSeatTaken, http.StatusConflict},
		{model.ErrGameFull, http.StatusConflict},
		{model.ErrGameOver, http.StatusConflict},
		{model.ErrNotYourTurn, http.StatusForbidden},
		{model.ErrNotAPlayer, http.StatusForbidden},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, errorStatus(tt.err), tt.want, "%v", tt.err)
	}
}

package communication

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"odyssey/engine"
	"odyssey/game"
	"odyssey/leaderboard"
	"odyssey/searcher"
)

func newTestServer(t *testing.T) (*httptest.Server, *leaderboard.Ledger) {
	t.Helper()
	ledger := leaderboard.NewLedger()
	s := NewServer(ledger,
		engine.WithEvaluator(searcher.NewEvaluator(searcher.WithSeed(1))),
		engine.WithDice(engine.NewDice(1)),
		engine.WithLogger(zerolog.Nop()),
	)
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return srv, ledger
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewBuffer(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func startMancala(t *testing.T, srv *httptest.Server) engine.Result {
	t.Helper()
	resp := call(t, srv, http.MethodPost, "/api/v1/sessions", `{"game":"mancala","players":[{"name":"alice","kind":"human"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[engine.Result](t, resp)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", decode[HealthResponse](t, resp).Status)
}

func TestListGames(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, http.MethodGet, "/api/v1/games", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	games := decode[[]GameInfo](t, resp)
	require.Len(t, games, len(game.Kinds))
	for _, info := range games {
		require.Equal(t, info.Kind.Players(), info.Players)
		require.Equal(t, info.Kind.UsesDice(), info.Dice)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	start := startMancala(t, srv)
	require.Equal(t, game.Player(1), start.State.CurrentPlayer)

	t.Run("view", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/v1/sessions/"+start.SessionID, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		view := decode[SessionView](t, resp)
		require.Len(t, view.LegalMoves, game.MancalaPits)
		require.Len(t, view.Players, 2)
		require.Equal(t, "alice", view.Players[0].Name)
		require.Equal(t, engine.AIController, view.Players[1].Kind)
		require.Nil(t, view.Summary)
	})

	t.Run("suggestion", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/v1/sessions/"+start.SessionID+"/suggestion?difficulty=easy", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		suggestion := decode[SuggestionResponse](t, resp)
		require.Equal(t, game.Player(1), suggestion.Move.Player)
		require.Equal(t, searcher.Easy, suggestion.Difficulty)
	})

	t.Run("move", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/v1/sessions/"+start.SessionID+"/moves", engine.Intent{Player: 1, From: 0, To: 4})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decode[engine.Result](t, resp)
		require.GreaterOrEqual(t, len(result.Moves), 2)
		require.Equal(t, 0, result.Moves[0].From)
	})

	t.Run("undo", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/v1/sessions/"+start.SessionID+"/undo", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, decode[engine.Result](t, resp).State.History)
	})

	t.Run("abandon", func(t *testing.T) {
		resp := call(t, srv, http.MethodDelete, "/api/v1/sessions/"+start.SessionID, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = call(t, srv, http.MethodGet, "/api/v1/sessions/"+start.SessionID, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSaveRestore(t *testing.T) {
	srv, _ := newTestServer(t)
	start := startMancala(t, srv)
	resp := call(t, srv, http.MethodPost, "/api/v1/sessions/"+start.SessionID+"/moves", engine.Intent{Player: 1, From: 0, To: 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	played := decode[engine.Result](t, resp)

	resp = call(t, srv, http.MethodGet, "/api/v1/sessions/"+start.SessionID+"/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blob, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	t.Run("restore under new players", func(t *testing.T) {
		body := RestoreRequest{State: blob, Players: []engine.Controller{engine.Human("carol"), engine.Human("dave")}}
		resp := call(t, srv, http.MethodPost, "/api/v1/sessions/restore", body)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		restored := decode[engine.Result](t, resp)
		require.NotEqual(t, start.SessionID, restored.SessionID)
		require.Equal(t, played.State.Hash(), restored.State.Hash())
		require.Len(t, restored.State.History, len(played.State.History))
	})

	t.Run("malformed blob", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/v1/sessions/restore", `{"state":{"kind":"mancala","board":"nope"},"players":[]}`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotEmpty(t, decode[ErrorResponse](t, resp).Error)
	})
}

func TestErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	start := startMancala(t, srv)
	moves := "/api/v1/sessions/" + start.SessionID + "/moves"

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown session", http.MethodGet, "/api/v1/sessions/nope", nil, http.StatusNotFound},
		{"unknown game", http.MethodPost, "/api/v1/sessions", `{"game":"chess"}`, http.StatusBadRequest},
		{"too many players", http.MethodPost, "/api/v1/sessions", `{"game":"go","players":[{},{},{}]}`, http.StatusBadRequest},
		{"malformed intent", http.MethodPost, moves, `{"player":`, http.StatusBadRequest},
		{"out of turn", http.MethodPost, moves, engine.Intent{Player: 2, From: 7, To: 11}, http.StatusConflict},
		{"illegal intent", http.MethodPost, moves, engine.Intent{Player: 1, From: 6, To: 7}, http.StatusUnprocessableEntity},
		{"unknown difficulty", http.MethodGet, "/api/v1/sessions/" + start.SessionID + "/suggestion?difficulty=godlike", nil, http.StatusBadRequest},
		{"nothing to undo", http.MethodPost, "/api/v1/sessions/" + start.SessionID + "/undo", nil, http.StatusUnprocessableEntity},
		{"invalid limit", http.MethodGet, "/api/v1/leaderboard?limit=-1", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, srv, tt.method, tt.path, tt.body)

			require.Equal(t, tt.status, resp.StatusCode)
			require.NotEmpty(t, decode[ErrorResponse](t, resp).Error)
		})
	}

	t.Run("user facing reason", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, moves, engine.Intent{Player: 1, From: 6, To: 7})

		require.Contains(t, decode[ErrorResponse](t, resp).Error, "that move isn't allowed")
	})
}

func TestFinishedGamesAreRated(t *testing.T) {
	srv, ledger := newTestServer(t)
	body := `{"game":"mancala","players":[{"name":"deep","kind":"ai","difficulty":"hard"},{"name":"shallow","kind":"ai","difficulty":"easy"}]}`

	resp := call(t, srv, http.MethodPost, "/api/v1/sessions", body)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decode[engine.Result](t, resp)
	require.True(t, result.State.IsOver())

	deep, ok := ledger.Profile("deep")
	require.True(t, ok)
	require.Equal(t, 1, deep.GamesPlayed)

	resp = call(t, srv, http.MethodGet, "/api/v1/leaderboard?limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]leaderboard.Profile](t, resp), 2)

	resp = call(t, srv, http.MethodGet, "/api/v1/sessions/"+result.SessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[SessionView](t, resp)
	require.NotNil(t, view.Summary)
	require.Equal(t, []string{"deep", "shallow"}, view.Summary.PlayerIDs)

	t.Run("moves after the end", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/v1/sessions/"+result.SessionID+"/moves", engine.Intent{Player: 1, From: 0, To: 4})

		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

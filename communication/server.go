package communication

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"odyssey/engine"
	"odyssey/game"
	"odyssey/leaderboard"
	"odyssey/searcher"
)

// Server exposes a coordinator and its leaderboard over HTTP.
type Server struct {
	coordinator *engine.Coordinator
	ledger      *leaderboard.Ledger
	logger      zerolog.Logger
	startTime   time.Time
}

// NewServer creates a coordinator whose finished sessions are rated in
// ledger. options are passed on to the coordinator.
func NewServer(ledger *leaderboard.Ledger, options ...engine.Option) *Server {
	options = append(options, engine.OnFinish(ledger.Observe))
	return &Server{
		coordinator: engine.NewCoordinator(options...),
		ledger:      ledger,
		logger:      log.With().Str("component", "http").Logger(),
		startTime:   time.Now(),
	}
}

func (s *Server) Coordinator() *engine.Coordinator {
	return s.coordinator
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleStart)
			r.Post("/restore", s.handleRestore)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleAbandon)
				r.Post("/moves", s.handleMove)
				r.Get("/suggestion", s.handleSuggestion)
				r.Post("/undo", s.handleUndo)
				r.Get("/save", s.handleSave)
			})
		})
	})

	return r
}

// requestLogger logs every request through zerolog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Sessions: len(s.coordinator.Sessions()),
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := make([]GameInfo, 0, len(game.Kinds))
	for _, kind := range game.Kinds {
		games = append(games, GameInfo{Kind: kind, Players: kind.Players(), Dice: kind.UsesDice()})
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	n := 10
	if limit := r.URL.Query().Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", limit))
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, s.ledger.Top(n))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	controllers := req.controllers()
	options := []game.Option{}
	if req.Seed != 0 {
		options = append(options, game.WithSeed(req.Seed))
	}

	result, err := s.coordinator.StartSession(req.Game, controllers, options...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.coordinator.Restore(req.State, req.Players)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := s.coordinator.Session(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state := session.State()
	view := SessionView{
		SessionID:  session.ID(),
		State:      state,
		Players:    session.Controllers(),
		LegalMoves: game.LegalMoves(state),
	}
	if state.IsOver() {
		summary, err := s.coordinator.Summary(session.ID())
		if err == nil {
			view.Summary = &summary
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	if err := s.coordinator.Abandon(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var intent engine.Intent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.coordinator.SubmitMove(chi.URLParam(r, "id"), intent)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	difficulty := searcher.Hard
	if name := r.URL.Query().Get("difficulty"); name != "" {
		parsed, err := searcher.ParseDifficulty(name)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		difficulty = parsed
	}

	move, err := s.coordinator.Suggest(chi.URLParam(r, "id"), difficulty)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionResponse{Move: move, Difficulty: difficulty})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	result, err := s.coordinator.Undo(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	blob, err := s.coordinator.Serialize(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		s.logger.Error().Err(err).Msg("failed to write saved game")
	}
}

// fail maps an engine error to a status and a message safe for players.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	message := engine.UserMessage(err)
	var serialization *game.SerializationError
	if errors.As(err, &serialization) || status == http.StatusBadRequest {
		message = err.Error()
	}
	s.writeError(w, r, status, message)
}

func statusOf(err error) int {
	var illegal *game.IllegalMoveError
	var serialization *game.SerializationError
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrNotFinished),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoMovesAvailable):
		return http.StatusConflict
	case errors.As(err, &illegal):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serialization):
		return http.StatusBadRequest
	case engine.IsFatal(err):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeJSON writes a JSON response with proper headers
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

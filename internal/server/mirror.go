package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"challonge-client/challonge"
	"challonge-client/internal/domain"
	"challonge-client/internal/middleware"
	"challonge-client/internal/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const defaultRunsLimit = 20

type Mirror interface {
	Sync(ctx context.Context, tournament string) (*domain.Snapshot, error)
	Snapshot(ctx context.Context, id int) (*domain.Snapshot, error)
	Tournaments(ctx context.Context) ([]domain.Tournament, error)
	RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)
}

// MirrorServer serves the local mirror as JSON.
type MirrorServer struct {
	mirror Mirror
	logger zerolog.Logger
}

func NewMirrorServer(mirror Mirror, logger zerolog.Logger) *MirrorServer {
	return &MirrorServer{mirror: mirror, logger: logger}
}

func (s *MirrorServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /tournaments", s.listTournaments)
	mux.HandleFunc("GET /tournaments/{id}", s.getTournament)
	mux.HandleFunc("POST /tournaments/{tournament}/sync", s.syncTournament)
	mux.HandleFunc("GET /sync-runs", s.listRuns)
	mux.Handle("GET /metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	var h http.Handler = mux
	h = c.Handler(h)
	h = middleware.Recover(s.logger)(h)
	h = middleware.RequestID(s.logger)(h)
	return h
}

func (s *MirrorServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *MirrorServer) listTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := s.mirror.Tournaments(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Tournament{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *MirrorServer) getTournament(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "tournament id must be a positive integer")
		return
	}
	snap, err := s.mirror.Snapshot(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *MirrorServer) syncTournament(w http.ResponseWriter, r *http.Request) {
	snap, err := s.mirror.Sync(r.Context(), r.PathValue("tournament"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type syncRunResponse struct {
	ID           string `json:"id"`
	Tournament   string `json:"tournament"`
	TournamentID *int   `json:"tournament_id,omitempty"`
	Participants int    `json:"participants"`
	Matches      int    `json:"matches"`
	Error        string `json:"error,omitempty"`
	StartedAt    string `json:"started_at"`
	DurationMS   int64  `json:"duration_ms"`
}

func (s *MirrorServer) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.mirror.RecentRuns(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := make([]syncRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = syncRunResponse{
			ID:           run.ID,
			Tournament:   run.Tournament,
			TournamentID: run.TournamentID,
			Participants: run.Participants,
			Matches:      run.Matches,
			Error:        run.Error,
			StartedAt:    run.StartedAt.UTC().Format(challonge.TimestampLayout),
			DurationMS:   run.FinishedAt.Sub(run.StartedAt).Milliseconds(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// fail maps mirror and upstream errors onto HTTP statuses.
func (s *MirrorServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *challonge.APIError
	switch {
	case errors.Is(err, repository.ErrNotMirrored), errors.Is(err, challonge.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, challonge.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

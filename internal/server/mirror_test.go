package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"challonge-client/challonge"
	"challonge-client/internal/domain"
	"challonge-client/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMirror struct {
	snapshots map[int]*domain.Snapshot
	runs      []domain.SyncRun
	syncErr   error
	lastLimit int
}

func (f *fakeMirror) Sync(_ context.Context, tournament string) (*domain.Snapshot, error) {
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &domain.Snapshot{Tournament: domain.Tournament{ID: 7, URL: tournament}}, nil
}

func (f *fakeMirror) Snapshot(_ context.Context, id int) (*domain.Snapshot, error) {
	snap, ok := f.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("tournament %d: %w", id, repository.ErrNotMirrored)
	}
	return snap, nil
}

func (f *fakeMirror) Tournaments(context.Context) ([]domain.Tournament, error) {
	var out []domain.Tournament
	for _, s := range f.snapshots {
		out = append(out, s.Tournament)
	}
	return out, nil
}

func (f *fakeMirror) RecentRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	f.lastLimit = limit
	return f.runs, nil
}

func serve(t *testing.T, m Mirror, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewMirrorServer(m, zerolog.Nop()).Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetTournament(t *testing.T) {
	m := &fakeMirror{snapshots: map[int]*domain.Snapshot{
		11: {
			Tournament:   domain.Tournament{ID: 11, Name: "Cup", State: "in_progress"},
			Participants: []domain.Participant{{ID: 1, Name: "Ada"}},
			Matches:      []domain.Match{},
		},
	}}

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"mirrored", "/tournaments/11", http.StatusOK},
		{"not mirrored", "/tournaments/12", http.StatusNotFound},
		{"bad id", "/tournaments/cup", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, m, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}

	rec := serve(t, m, http.MethodGet, "/tournaments/11")
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "Cup", snap.Tournament.Name)
	assert.Equal(t, "Ada", snap.Participants[0].Name)
}

func TestListTournamentsEmpty(t *testing.T) {
	rec := serve(t, &fakeMirror{}, http.MethodGet, "/tournaments")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSyncTournamentErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"upstream missing", &challonge.APIError{Kind: challonge.KindNotFound, StatusCode: 404}, http.StatusNotFound},
		{"upstream down", &challonge.APIError{Kind: challonge.KindServerError, StatusCode: 500}, http.StatusBadGateway},
		{"network", errors.New("dial tcp: refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeMirror{syncErr: tt.err}, http.MethodPost, "/tournaments/cup/sync")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestListRuns(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	m := &fakeMirror{runs: []domain.SyncRun{
		{ID: "r1", Tournament: "cup", Participants: 4, StartedAt: start, FinishedAt: start.Add(250 * time.Millisecond)},
	}}

	rec := serve(t, m, http.MethodGet, "/sync-runs?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, m.lastLimit)

	var runs []syncRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, int64(250), runs[0].DurationMS)
	assert.Equal(t, "2024-06-01T10:00:00.000+00:00", runs[0].StartedAt)

	rec = serve(t, m, http.MethodGet, "/sync-runs?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsAndHealth(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(t, &fakeMirror{}, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, serve(t, &fakeMirror{}, http.MethodGet, "/healthz").Code)
}

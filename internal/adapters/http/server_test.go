package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpadapter "tgscope/internal/adapters/http"
	"tgscope/internal/ports"
)

type fakeLookup struct {
	handle func(ctx context.Context, handle string) (string, error)
}

func (f *fakeLookup) Handle(ctx context.Context, handle string) (string, error) {
	return f.handle(ctx, handle)
}

type stubAudit struct {
	events []ports.LookupEvent
	err    error
}

func (s *stubAudit) Record(ctx context.Context, ev ports.LookupEvent) error { return nil }

func (s *stubAudit) Recent(ctx context.Context, limit int) ([]ports.LookupEvent, error) {
	return s.events, s.err
}

func TestGetUserInfo_OK(t *testing.T) {
	srv := httpadapter.New(&fakeLookup{
		handle: func(ctx context.Context, handle string) (string, error) {
			assert.Equal(t, "alice", handle)
			return "👤 User Report", nil
		},
	}, &stubAudit{}, t.TempDir(), zap.NewNop()).Routes()

	req := httptest.NewRequest("GET", "/get_user_info?username=@alice", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "👤 User Report", w.Body.String())
}

func TestGetUserInfo_LookupError(t *testing.T) {
	srv := httpadapter.New(&fakeLookup{
		handle: func(ctx context.Context, handle string) (string, error) {
			return "", errors.New(`Error: handle not resolved: "ghostly"`)
		},
	}, &stubAudit{}, t.TempDir(), zap.NewNop()).Routes()

	req := httptest.NewRequest("GET", "/get_user_info?username=ghostly", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "), "got %q", w.Body.String())
}

func TestGetUserInfo_HandleLengthConstraint(t *testing.T) {
	srv := httpadapter.New(&fakeLookup{
		handle: func(ctx context.Context, handle string) (string, error) {
			t.Fatal("lookup must not run for invalid handles")
			return "", nil
		},
	}, &stubAudit{}, t.TempDir(), zap.NewNop()).Routes()

	for _, username := range []string{"", "abc", strings.Repeat("a", 33)} {
		req := httptest.NewRequest("GET", "/get_user_info?username="+username, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "username %q", username)
		assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "))
	}
}

func TestHealthz(t *testing.T) {
	srv := httpadapter.New(&fakeLookup{}, &stubAudit{}, t.TempDir(), zap.NewNop()).Routes()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRecentLookups(t *testing.T) {
	audit := &stubAudit{events: []ports.LookupEvent{{
		ID:       "ev-1",
		Handle:   "alice",
		Kind:     "user",
		OK:       true,
		Duration: 120 * time.Millisecond,
		At:       time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}}}
	srv := httpadapter.New(&fakeLookup{}, audit, t.TempDir(), zap.NewNop()).Routes()

	req := httptest.NewRequest("GET", "/recent_lookups", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Lookups []struct {
			ID         string `json:"id"`
			Handle     string `json:"handle"`
			DurationMS int64  `json:"duration_ms"`
		} `json:"lookups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Lookups, 1)
	assert.Equal(t, "ev-1", body.Lookups[0].ID)
	assert.Equal(t, "alice", body.Lookups[0].Handle)
	assert.Equal(t, int64(120), body.Lookups[0].DurationMS)
}

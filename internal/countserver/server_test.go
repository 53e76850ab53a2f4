package countserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momor666/link-grammar/config"
)

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// Prometheus collectors register globally; share one set across tests.
func testServer() *Server {
	metricsOnce.Do(func() {
		metrics = NewMetrics()
	})
	return &Server{
		Config:  &config.Config{MaxNullCount: 1},
		Metrics: metrics,
	}
}

func TestCountSentence(t *testing.T) {
	resp, err := CountSentence("a:S+ b: c:S-", 1, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, resp.Counts)
	assert.False(t, resp.Exhausted)
	assert.False(t, resp.Saturated)
	assert.Greater(t, resp.MemoEntries, 0)
}

func TestCountSentenceErrors(t *testing.T) {
	_, err := CountSentence("", 0, false, 0)
	assert.Error(t, err)
	_, err = CountSentence("a:S+ b:S-", -1, false, 0)
	assert.Error(t, err)
	_, err = CountSentence("a:S+ badword", 0, false, 0)
	assert.Error(t, err)

	// An oversized budget clamps to the sentence length.
	resp, err := CountSentence("a:S+ b:S-", 5, false, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Counts, 2)
}

func postCount(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/count", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	s.CountHandler().ServeHTTP(w, req)
	return w
}

func TestCountHandler(t *testing.T) {
	s := testServer()
	w := postCount(t, s, CountRequest{Sentence: "a:S+ b:S-"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{1, 0}, resp.Counts)
}

func TestCountHandlerOverrides(t *testing.T) {
	s := testServer()
	maxNull := 0
	w := postCount(t, s, CountRequest{Sentence: "a:S+ b:S-", MaxNullCount: &maxNull})
	require.Equal(t, http.StatusOK, w.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{1}, resp.Counts)
}

func TestCountHandlerBadRequest(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/count",
		bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.CountHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postCount(t, s, CountRequest{Sentence: "garbage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/count", nil)
	w = httptest.NewRecorder()
	s.CountHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthHandler(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.HealthHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

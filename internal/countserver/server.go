// Package countserver exposes the counting engine over JSON HTTP. A
// request carries a sentence spec (words with their candidate disjunct
// connector lists); the response carries the linkage counts at each null
// count up to the requested maximum.
package countserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/momor666/link-grammar/config"
	"github.com/momor666/link-grammar/internal/count"
	"github.com/momor666/link-grammar/internal/fastmatch"
	"github.com/momor666/link-grammar/internal/linkage"
	"github.com/momor666/link-grammar/internal/resources"
)

const MaxSentenceLength = 250

type Server struct {
	Config  *config.Config
	Metrics *Metrics
}

type CountRequest struct {
	// Sentence is a sentence spec, e.g. "the:D+ cat:D-,S+ ran:S-".
	Sentence string `json:"sentence"`
	// MaxNullCount overrides the configured default when non-nil.
	MaxNullCount *int `json:"maxNullCount,omitempty"`
	// IslandsOk overrides the configured default when non-nil.
	IslandsOk *bool `json:"islandsOk,omitempty"`
}

type CountResponse struct {
	Sentence string `json:"sentence"`
	// Counts[k] is the number of linkages with exactly k null words.
	Counts []int64 `json:"counts"`
	// Saturated is set when any count hit the saturation sentinel; the
	// true count at that null level is at least the reported value.
	Saturated bool `json:"saturated"`
	// Exhausted is set when the resource budget ran out; every count is
	// then a lower bound.
	Exhausted  bool  `json:"exhausted"`
	DurationMs  int64 `json:"durationMs"`
	MemoEntries int   `json:"memoEntries"`
}

// CountSentence runs the engine over one sentence spec. It is the
// library entry the HTTP handler, the batch tool and the shell all use.
func CountSentence(spec string, maxNullCount int, islandsOk bool,
	maxParseTime time.Duration) (*CountResponse, error) {

	sent, err := linkage.ParseSentenceSpec(spec)
	if err != nil {
		return nil, err
	}
	if sent.Length() > MaxSentenceLength {
		return nil, errors.New("sentence too long")
	}
	if maxNullCount < 0 {
		return nil, errors.New("negative max null count")
	}
	if maxNullCount >= sent.Length() {
		maxNullCount = sent.Length() - 1
	}

	start := time.Now()
	mchxt := fastmatch.NewContext(sent)
	ctxt := count.NewContext(sent.Length())
	defer ctxt.Free()

	opts := count.Options{
		IslandsOk: islandsOk,
		Resources: resources.New(maxParseTime),
	}

	resp := &CountResponse{Sentence: spec}
	// The memo table persists across null counts; entries are keyed on
	// the null budget, so later parses reuse earlier subresults.
	for nc := 0; nc <= maxNullCount; nc++ {
		total := count.Parse(sent, mchxt, ctxt, nc, opts)
		if total == count.CountSaturated {
			resp.Saturated = true
		}
		resp.Counts = append(resp.Counts, total)
	}
	resp.Exhausted = ctxt.Exhausted()
	resp.MemoEntries = ctxt.TableEntries()
	resp.DurationMs = time.Since(start).Milliseconds()
	return resp, nil
}

func writeError(w http.ResponseWriter, status int, err string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err})
}

func (s *Server) outcome(resp *CountResponse) string {
	switch {
	case resp.Exhausted:
		return "truncated"
	case resp.Saturated:
		return "saturated"
	}
	return "exact"
}

// CountHandler serves POST /count.
func (s *Server) CountHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "use POST")
			return
		}
		var req CountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		maxNull := s.Config.MaxNullCount
		if req.MaxNullCount != nil {
			maxNull = *req.MaxNullCount
		}
		islandsOk := s.Config.IslandsOk
		if req.IslandsOk != nil {
			islandsOk = *req.IslandsOk
		}

		log.Info().Str("sentence", req.Sentence).Int("max-null", maxNull).
			Msg("countRequest")

		resp, err := CountSentence(req.Sentence, maxNull, islandsOk,
			s.Config.MaxParseTime)
		if err != nil {
			s.Metrics.ParsesTotal.WithLabelValues("error").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Metrics.ParsesTotal.WithLabelValues(s.outcome(resp)).Inc()
		s.Metrics.ParseDuration.Observe(float64(resp.DurationMs) / 1000.0)
		s.Metrics.MemoEntries.Observe(float64(resp.MemoEntries))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}

// HealthHandler serves GET /healthz.
func (s *Server) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

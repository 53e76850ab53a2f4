// Package resources tracks the wall-clock budget of a single parse. The
// counter polls Exhausted at a coarse cadence and degrades to a lower
// bound on the count once the budget runs out, rather than aborting.
package resources

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Resources is the budget handle passed through parse options. The zero
// duration means no limit. A nil *Resources is never exhausted.
type Resources struct {
	MaxParseTime time.Duration

	start    time.Time
	reported bool
}

// New starts the clock on a fresh budget.
func New(maxParseTime time.Duration) *Resources {
	return &Resources{MaxParseTime: maxParseTime, start: time.Now()}
}

// Exhausted reports whether the budget has run out. Pure query apart from
// a one-time log line on the rising edge.
func (r *Resources) Exhausted() bool {
	if r == nil || r.MaxParseTime == 0 {
		return false
	}
	if time.Since(r.start) < r.MaxParseTime {
		return false
	}
	if !r.reported {
		r.reported = true
		log.Warn().Dur("max-parse-time", r.MaxParseTime).
			Msg("parse time exhausted; counts are now a lower bound")
	}
	return true
}

// Elapsed returns time spent since New.
func (r *Resources) Elapsed() time.Duration {
	if r == nil {
		return 0
	}
	return time.Since(r.start)
}

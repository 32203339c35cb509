package views

import (
	"time"

	"github.com/riskforge/payrisk/pkg"
)

// PredictionEvent is the audit payload published after a record is scored.
type PredictionEvent struct {
	EventID     string       `json:"eventId"`
	TraceID     string       `json:"traceId"`
	RunID       string       `json:"runId"`
	Decision    pkg.Decision `json:"decision"`
	Probability float64      `json:"probability"`
	CrossBorder bool         `json:"crossBorder"`
	Verified    bool         `json:"verified"`
	ScoredAt    time.Time    `json:"scoredAt"`
}

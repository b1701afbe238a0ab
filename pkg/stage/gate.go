package stage

import "ai-analytics-be/internal/pkg/apperror"

// Stage is one step of the fixed analysis pipeline.
type Stage string

const (
	Upload    Stage = "upload"
	Clean     Stage = "clean"
	Query     Stage = "query"
	Visualize Stage = "visualize"
	Report    Stage = "report"
)

// Order is the fixed pipeline sequence. No skipping.
var Order = []Stage{Upload, Clean, Query, Visualize, Report}

// Gate tracks which stages completed. Flags are monotonic: they only revert
// on a full Reset. Completion is always an explicit signal from the caller,
// never derived from data presence.
type Gate struct {
	Done map[Stage]bool `json:"done"`
}

func NewGate() *Gate {
	g := &Gate{Done: make(map[Stage]bool, len(Order))}
	for _, s := range Order {
		g.Done[s] = false
	}
	return g
}

// MarkComplete flags a stage as done. Idempotent.
func (g *Gate) MarkComplete(s Stage) {
	g.Done[s] = true
}

func (g *Gate) IsComplete(s Stage) bool {
	return g.Done[s]
}

// IsUnlocked reports whether every stage before s is complete. The first
// stage is always unlocked.
func (g *Gate) IsUnlocked(s Stage) bool {
	for _, prior := range Order {
		if prior == s {
			return true
		}
		if !g.Done[prior] {
			return false
		}
	}
	return false
}

// Require returns a StageLockedError naming s when it is still locked.
func (g *Gate) Require(s Stage) error {
	if !g.IsUnlocked(s) {
		return &apperror.StageLockedError{Stage: string(s)}
	}
	return nil
}

// Reset clears every flag. The owning session keeps its identifier.
func (g *Gate) Reset() {
	for _, s := range Order {
		g.Done[s] = false
	}
}

// Snapshot copies the per-stage status map.
func (g *Gate) Snapshot() map[Stage]bool {
	out := make(map[Stage]bool, len(g.Done))
	for s, done := range g.Done {
		out[s] = done
	}
	return out
}

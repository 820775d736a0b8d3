package provider

import "time"

// Run statuses reported by CI systems. A run is terminal once its status
// is StatusCompleted; only then is Conclusion meaningful.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Run conclusions for a completed run.
const (
	ConclusionSuccess   = "success"
	ConclusionFailure   = "failure"
	ConclusionCancelled = "cancelled"
)

// Run represents one execution of a workflow in a CI system.
// Records are produced remotely by the listing API and never mutated locally.
type Run struct {
	ID         int64
	Status     string
	Conclusion string
	CreatedAt  time.Time
	HeadBranch string
	URL        string
}

// Terminal reports whether the run has reached a state from which no
// further transition occurs.
func (r Run) Terminal() bool {
	return r.Status == StatusCompleted
}

// Artifact represents a named output blob attached to one run.
type Artifact struct {
	ID          int64
	Name        string
	SizeInBytes int64
	Expired     bool
}

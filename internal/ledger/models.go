package ledger

import "time"

// JobState is the lifecycle of one render job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s JobState) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// Run is one batch invocation.
type Run struct {
	ID           string
	Subject      string
	ManifestPath string
	ResultsPath  string
	StartedAt    time.Time
	// CompletedAt is zero while the run is in flight.
	CompletedAt time.Time
	Total       int
	Succeeded   int
	Failed      int
}

// Job is one question's render within a run. Zero timestamps mean the
// job never reached that point.
type Job struct {
	RunID       string
	QuestionID  string
	Profile     string
	State       JobState
	OutputPath  string
	FailureKind string
	ErrorText   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

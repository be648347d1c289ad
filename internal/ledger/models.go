package ledger

import (
	"errors"
	"time"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type Run struct {
	ID         string
	Podcast    string
	Episode    string
	Status     Status
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

type StageRecord struct {
	RunID     string
	Stage     string
	Seq       int
	Content   string
	CreatedAt time.Time
}

var (
	ErrRunNotFound = errors.New("run not found")
	ErrRunFinished = errors.New("run already finished")
)

package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Kind string

const KindRegistrationEmail Kind = "registration_email"

// Job is a deferred unit of work. Payload is decoded by the handler
// registered for Kind.
type Job struct {
	Kind       Kind            `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

type RegistrationEmail struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// NewJob wraps payload into a Job of the given kind.
func NewJob(kind Kind, payload any) (Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Job{Kind: kind, Payload: raw, EnqueuedAt: time.Now().UTC()}, nil
}

// ErrQueueEmpty is returned by Dequeue when no job arrived within the wait.
var ErrQueueEmpty = errors.New("queue empty")

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}

// Consumer is the worker side of a Queue.
type Consumer interface {
	Dequeue(ctx context.Context, wait time.Duration) (Job, error)
}

package domain

import (
	"errors"
	"strings"
)

// Phase is the lifecycle of an asynchronous state-mutating operation
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Status is the observable phase of the last operation on a state component.
// Error is only set when Phase is PhaseRejected.
type Status struct {
	Phase Phase  `json:"phase"`
	Error string `json:"error,omitempty"`
}

// Loading reports whether an operation is in flight
func (s Status) Loading() bool {
	return s.Phase == PhasePending
}

// Pending returns the status of an operation that has just started
func Pending() Status {
	return Status{Phase: PhasePending}
}

// Fulfilled returns the status of a successful operation
func Fulfilled() Status {
	return Status{Phase: PhaseFulfilled}
}

// Rejected returns the status of a failed operation with a human-readable message
func Rejected(err error, fallback string) Status {
	return Status{Phase: PhaseRejected, Error: Message(err, fallback)}
}

// Messager is implemented by errors that carry a message meant for people
type Messager interface {
	UserMessage() string
}

// Message extracts a human-readable message from err, using fallback when none is available
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var m Messager
	if errors.As(err, &m) {
		if msg := strings.TrimSpace(m.UserMessage()); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

package joblogs

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	// KindText is a plain status line event.
	KindText = "text"
	// KindError is an error event, Message holds the error message.
	KindError = "error"
	// KindJob is a job outcome event, Job holds the descriptor.
	KindJob = "job"
)

// JobLogEvent represents a raw log event emitted by a job worker.
type JobLogEvent struct {
	Severity    string         `json:"severity" validate:"required,oneof=DEBUG INFO WARN ERROR FATAL ANY"`
	Time        time.Time      `json:"time" validate:"required"`
	ProgramName string         `json:"program_name"`
	Context     string         `json:"context"`
	Kind        string         `json:"kind" validate:"omitempty,oneof=text error job"`
	Message     string         `json:"message"`
	Job         *JobDescriptor `json:"job,omitempty" validate:"required_if=Kind job"`
}

// JobDescriptor describes the job a job outcome event refers to.
type JobDescriptor struct {
	Class string          `json:"class" validate:"required"`
	Args  json.RawMessage `json:"args"`
	Retry bool            `json:"retry"`
}

// Payload returns the payload carried by the event.
func (e *JobLogEvent) Payload() Payload {
	switch e.Kind {
	case KindError:
		return ErrorPayload{Message: e.Message}
	case KindJob:
		if e.Job == nil {
			return TextPayload(e.Message)
		}
		return JobOutcomePayload{
			Class: e.Job.Class,
			Args:  compactArgs(e.Job.Args),
			Retry: e.Job.Retry,
		}
	default:
		return TextPayload(e.Message)
	}
}

// compactArgs renders the job arguments as compact JSON text.
func compactArgs(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

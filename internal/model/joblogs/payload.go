package joblogs

import (
	"fmt"
)

// Payload is the raw value handed to a logging call, before classification.
// It is one of ErrorPayload, JobOutcomePayload or TextPayload.
type Payload interface {
	isPayload()
}

// ErrorPayload carries the message of an error value.
type ErrorPayload struct {
	Message string
}

// JobOutcomePayload describes a failed job and whether it will be retried.
type JobOutcomePayload struct {
	Class string
	Args  string
	Retry bool
}

// TextPayload is a plain status line, conventionally "<word>[:] [<number>] ...".
type TextPayload string

func (ErrorPayload) isPayload()      {}
func (JobOutcomePayload) isPayload() {}
func (TextPayload) isPayload()       {}

// NewErrorPayload returns the payload for err.
func NewErrorPayload(err error) ErrorPayload {
	return ErrorPayload{Message: safeError(err)}
}

// FromAny coerces an arbitrary value into a Payload.
// Errors become ErrorPayload, job descriptor maps become JobOutcomePayload and
// everything else falls back to its string form.
func FromAny(v any) Payload {
	switch v := v.(type) {
	case nil:
		return TextPayload("")
	case Payload:
		return v
	case error:
		return NewErrorPayload(v)
	case map[string]any:
		return JobOutcomePayload{
			Class: render(v["class"]),
			Args:  render(v["args"]),
			Retry: truthy(v["retry"]),
		}
	case string:
		return TextPayload(v)
	case fmt.Stringer:
		return TextPayload(safeString(v))
	default:
		return TextPayload(fmt.Sprint(v))
	}
}

// truthy treats everything except nil and false as true.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

func render(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func safeError(err error) (msg string) {
	if err == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("PANIC=%v", r)
		}
	}()
	return err.Error()
}

func safeString(s fmt.Stringer) (str string) {
	defer func() {
		if r := recover(); r != nil {
			str = fmt.Sprintf("PANIC=%v", r)
		}
	}()
	return s.String()
}

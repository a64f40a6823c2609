package classifier

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
)

var (
	// statusPattern matches the leading status word of a text payload.
	statusPattern = regexp.MustCompile(`^(start|done|fail):?$`)

	// numericPrefix matches the leading decimal number of a token, e.g. "1.5" in "1.5s".
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// Classify normalizes a payload into a status record.
// It never fails: anything that is not an error or a job outcome is
// classified as text.
func Classify(payload joblogsmodel.Payload) joblogsmodel.StatusRecord {
	switch p := payload.(type) {
	case joblogsmodel.ErrorPayload:
		return joblogsmodel.StatusRecord{
			Status:  statusPtr(joblogsmodel.StatusException),
			Message: p.Message,
		}
	case joblogsmodel.JobOutcomePayload:
		if p.Retry {
			return joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusRetry),
				Message: fmt.Sprintf("%s failed, retrying with args %s.", p.Class, p.Args),
			}
		}
		return joblogsmodel.StatusRecord{
			Status:  statusPtr(joblogsmodel.StatusDead),
			Message: fmt.Sprintf("%s failed with args %s, not retrying.", p.Class, p.Args),
		}
	case joblogsmodel.TextPayload:
		return classifyText(string(p))
	case nil:
		return classifyText("")
	default:
		return classifyText(fmt.Sprint(p))
	}
}

// classifyText extracts the status and run time from a status line.
func classifyText(message string) joblogsmodel.StatusRecord {
	record := joblogsmodel.StatusRecord{Message: message}

	tokens := Fields(message)
	if len(tokens) == 0 {
		return record
	}

	match := statusPattern.FindStringSubmatch(tokens[0])
	if match == nil {
		return record
	}

	status := joblogsmodel.Status(match[1])
	record.Status = &status

	// Only start and done carry a run time.
	if status == joblogsmodel.StatusFail || len(tokens) < 2 {
		return record
	}

	if runTime, ok := parseRunTime(tokens[1]); ok {
		record.RunTime = &runTime
	}

	return record
}

// Fields splits s around runs of ASCII whitespace. Other Unicode spaces,
// such as U+00A0, are part of a token.
func Fields(s string) []string {
	return strings.FieldsFunc(s, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// parseRunTime parses a run time in seconds. A token that is not a number as a
// whole falls back to its leading numeric prefix; non-finite values are rejected.
func parseRunTime(token string) (float64, bool) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		prefix := numericPrefix.FindString(token)
		if prefix == "" {
			return 0, false
		}
		if value, err = strconv.ParseFloat(prefix, 64); err != nil {
			return 0, false
		}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

func statusPtr(s joblogsmodel.Status) *joblogsmodel.Status {
	return &s
}

package formatter

import (
	"strconv"
	"time"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/classifier"
)

type v2Fields struct {
	PID         int    `json:"pid"`
	TID         string `json:"tid"`
	Context     string `json:"context"`
	ProgramName string `json:"program_name"`
	Worker      string `json:"worker"`
}

type v2Envelope struct {
	Timestamp string               `json:"timestamp"`
	Fields    v2Fields             `json:"fields"`
	Type      string               `json:"type"`
	Status    *joblogsmodel.Status `json:"status"`
	Severity  string               `json:"severity"`
	RunTime   *RunTime             `json:"run_time"`
	Message   string               `json:"message"`
}

// V2 formats records with unprefixed keys.
type V2 struct {
	identity Identity
}

// NewV2 creates a new V2 formatter.
func NewV2(options ...Option) *V2 {
	return &V2{identity: newConfig(options...).Identity}
}

// Format renders one V2 record.
func (f *V2) Format(severity string, t time.Time, programName string, payload joblogsmodel.Payload, context string) string {
	envelope := v2Envelope{
		Timestamp: timestamp(t),
		Fields: v2Fields{
			PID:         f.identity.PID(),
			TID:         strconv.FormatUint(f.identity.TID(), 10),
			Context:     context,
			ProgramName: programName,
			Worker:      Worker(context),
		},
		Type:     recordType,
		Severity: severity,
	}

	record := classifier.Classify(payload)
	envelope.Status = record.Status
	envelope.RunTime = newRunTime(record.RunTime)
	envelope.Message = record.Message

	return encode(&envelope)
}

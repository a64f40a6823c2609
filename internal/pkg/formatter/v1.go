package formatter

import (
	"strconv"
	"time"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/classifier"
)

// v1Fields is the metadata block of a V1 record.
type v1Fields struct {
	PID         int    `json:"pid"`
	TID         string `json:"tid"`
	Context     string `json:"context"`
	ProgramName string `json:"program_name"`
	Worker      string `json:"worker"`
}

// v1Envelope is a V1 record. Field order is part of the wire format.
type v1Envelope struct {
	Timestamp string               `json:"@timestamp"`
	Fields    v1Fields             `json:"@fields"`
	Type      string               `json:"@type"`
	Status    *joblogsmodel.Status `json:"@status"`
	Severity  string               `json:"@severity"`
	RunTime   *RunTime             `json:"@run_time"`
	Message   string               `json:"@message"`
}

// V1 formats records with the legacy @-prefixed schema.
type V1 struct {
	identity Identity
}

// NewV1 creates a new V1 formatter.
func NewV1(options ...Option) *V1 {
	return &V1{identity: newConfig(options...).Identity}
}

// Format renders one V1 record.
func (f *V1) Format(severity string, t time.Time, programName string, payload joblogsmodel.Payload, context string) string {
	envelope := v1Envelope{
		Timestamp: timestamp(t),
		Fields: v1Fields{
			PID:         f.identity.PID(),
			TID:         "TID-" + strconv.FormatUint(f.identity.TID(), 36),
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

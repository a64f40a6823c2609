package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/formatter"
)

const (
	// PayloadKey is the field key holding an explicit log payload.
	PayloadKey = "payload"

	// ContextKey is the field key holding the logging context string.
	ContextKey = "context"
)

// Payload returns a field carrying an explicit payload, coerced with joblogsmodel.FromAny.
func Payload(v any) zap.Field {
	return zap.Any(PayloadKey, v)
}

// JobOutcome returns a field carrying a job outcome payload.
func JobOutcome(class, args string, retry bool) zap.Field {
	return zap.Any(PayloadKey, joblogsmodel.JobOutcomePayload{Class: class, Args: args, Retry: retry})
}

// Context returns a field setting the logging context, e.g. "HardWorker JID-1".
func Context(context string) zap.Field {
	return zap.String(ContextKey, context)
}

// core renders zap entries as formatter records.
// The envelope is fixed, so fields other than payload, error and context are dropped.
type core struct {
	zapcore.LevelEnabler

	formatter   formatter.Formatter
	out         zapcore.WriteSyncer
	programName string
	context     string
	payload     joblogsmodel.Payload
	err         joblogsmodel.Payload
}

// NewCore creates a zap core writing one formatter line per entry.
func NewCore(f formatter.Formatter, out zapcore.WriteSyncer, enab zapcore.LevelEnabler, programName string) zapcore.Core {
	return &core{
		LevelEnabler: enab,
		formatter:    f,
		out:          out,
		programName:  programName,
	}
}

func (c *core) clone() *core {
	clone := *c
	return &clone
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	clone := c.clone()
	clone.apply(fields)
	return clone
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	state := c
	if len(fields) > 0 {
		state = c.clone()
		state.apply(fields)
	}

	var payload joblogsmodel.Payload = joblogsmodel.TextPayload(ent.Message)
	switch {
	case state.payload != nil:
		payload = state.payload
	case state.err != nil:
		payload = state.err
	}

	programName := c.programName
	if ent.LoggerName != "" {
		programName = ent.LoggerName
	}

	line := c.formatter.Format(Severity(ent.Level), ent.Time, programName, payload, state.context)
	if _, err := c.out.Write([]byte(line)); err != nil {
		return err
	}

	if ent.Level > zapcore.ErrorLevel {
		// Flush before a possible panic or exit.
		return c.Sync()
	}
	return nil
}

func (c *core) Sync() error {
	return c.out.Sync()
}

// apply picks the payload, error and context out of fields.
func (c *core) apply(fields []zapcore.Field) {
	for i := range fields {
		f := &fields[i]
		switch {
		case f.Key == ContextKey && f.Type == zapcore.StringType:
			c.context = f.String
		case f.Key == PayloadKey:
			c.payload = joblogsmodel.FromAny(fieldValue(f))
		case f.Type == zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				c.err = joblogsmodel.NewErrorPayload(err)
			}
		}
	}
}

// fieldValue returns the value a payload field was built from.
func fieldValue(f *zapcore.Field) any {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.ErrorType, zapcore.StringerType, zapcore.ReflectType:
		return f.Interface
	default:
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		return enc.Fields[f.Key]
	}
}

// Severity returns the severity name of a zap level.
func Severity(level zapcore.Level) string {
	switch {
	case level < zapcore.InfoLevel:
		return "DEBUG"
	case level == zapcore.InfoLevel:
		return "INFO"
	case level == zapcore.WarnLevel:
		return "WARN"
	case level == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "FATAL"
	}
}

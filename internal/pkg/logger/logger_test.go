package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	loggerpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/logger"
)

func newLogger(t *testing.T, format, level string) (*zap.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	_, logger, err := loggerpkg.Init(t.Context(), &loggerpkg.Config{
		ServiceName: "joblogs-formatter",
		Format:      format,
		Level:       level,
		Output:      zapcore.AddSync(&buf),
	}, nil)
	require.NoError(t, err)

	return logger, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestCore_Payloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		log         func(l *zap.Logger)
		wantStatus  any
		wantMessage string
		wantRunTime any
		wantSev     string
	}{
		{
			name:        "message text",
			log:         func(l *zap.Logger) { l.Info("done: 0.25 sec") },
			wantStatus:  "done",
			wantMessage: "done: 0.25 sec",
			wantRunTime: 0.25,
			wantSev:     "INFO",
		},
		{
			name:        "error field wins over message",
			log:         func(l *zap.Logger) { l.Error("job failed", zap.Error(errors.New("boom"))) },
			wantStatus:  "exception",
			wantMessage: "boom",
			wantSev:     "ERROR",
		},
		{
			name: "payload field wins over error field",
			log: func(l *zap.Logger) {
				l.Warn("job failed",
					zap.Error(errors.New("boom")),
					loggerpkg.JobOutcome("HardWorker", `[1]`, true),
				)
			},
			wantStatus:  "retry",
			wantMessage: "HardWorker failed, retrying with args [1].",
			wantSev:     "WARN",
		},
		{
			name: "payload from job descriptor map",
			log: func(l *zap.Logger) {
				l.Warn("job failed", loggerpkg.Payload(map[string]any{"class": "HardWorker", "args": "[]", "retry": nil}))
			},
			wantStatus:  "dead",
			wantMessage: "HardWorker failed with args [], not retrying.",
			wantSev:     "WARN",
		},
		{
			name:        "payload from string",
			log:         func(l *zap.Logger) { l.Info("ignored", loggerpkg.Payload("start")) },
			wantStatus:  "start",
			wantMessage: "start",
			wantSev:     "INFO",
		},
		{
			name:        "payload from number",
			log:         func(l *zap.Logger) { l.Info("ignored", loggerpkg.Payload(42)) },
			wantStatus:  nil,
			wantMessage: "42",
			wantSev:     "INFO",
		},
		{
			name:        "other fields are dropped",
			log:         func(l *zap.Logger) { l.Info("plain text", zap.Int("attempt", 3)) },
			wantStatus:  nil,
			wantMessage: "plain text",
			wantSev:     "INFO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := newLogger(t, "v2", "debug")
			tt.log(logger)

			lines := decodeLines(t, buf)
			require.Len(t, lines, 1)

			assert.Equal(t, tt.wantStatus, lines[0]["status"])
			assert.Equal(t, tt.wantMessage, lines[0]["message"])
			assert.Equal(t, tt.wantRunTime, lines[0]["run_time"])
			assert.Equal(t, tt.wantSev, lines[0]["severity"])
			assert.Equal(t, "sidekiq", lines[0]["type"])
		})
	}
}

func TestCore_Context(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger(t, "v1", "info")

	jobLogger := logger.With(loggerpkg.Context("HardWorker JID-abc"))
	jobLogger.Info("start")
	jobLogger.Named("sidekiq").Info("done 1.0")
	logger.Info("no context")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)

	fields := lines[0]["@fields"].(map[string]any)
	assert.Equal(t, "HardWorker JID-abc", fields["context"])
	assert.Equal(t, "HardWorker", fields["worker"])
	assert.Equal(t, "joblogs-formatter", fields["program_name"])
	assert.True(t, strings.HasPrefix(fields["tid"].(string), "TID-"))

	fields = lines[1]["@fields"].(map[string]any)
	assert.Equal(t, "sidekiq", fields["program_name"])
	assert.InDelta(t, 1.0, lines[1]["@run_time"], 1e-9)

	fields = lines[2]["@fields"].(map[string]any)
	assert.Equal(t, "", fields["context"])
	assert.Equal(t, "", fields["worker"])
}

func TestCore_LevelFiltering(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger(t, "v2", "warn")
	logger.Debug("start")
	logger.Info("start")
	logger.Warn("fail")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "fail", lines[0]["status"])
}

func TestInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *loggerpkg.Config
		wantErr bool
	}{
		{name: "zap", cfg: &loggerpkg.Config{ServiceName: "svc", Format: "zap", Level: "info"}},
		{name: "v1", cfg: &loggerpkg.Config{ServiceName: "svc", Format: "v1", Level: "debug"}},
		{name: "v2 with default level", cfg: &loggerpkg.Config{ServiceName: "svc", Format: "V2"}},
		{name: "error: unknown format", cfg: &loggerpkg.Config{Format: "logfmt", Level: "info"}, wantErr: true},
		{name: "error: unknown level", cfg: &loggerpkg.Config{Format: "zap", Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, logger, err := loggerpkg.Init(t.Context(), tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, logger, loggerpkg.FromContext(ctx))
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, loggerpkg.FromContext(context.Background()))

	logger := zap.NewExample()
	assert.Same(t, logger, loggerpkg.FromContext(loggerpkg.WithLogger(context.Background(), logger)))
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", loggerpkg.Severity(zapcore.DebugLevel))
	assert.Equal(t, "INFO", loggerpkg.Severity(zapcore.InfoLevel))
	assert.Equal(t, "WARN", loggerpkg.Severity(zapcore.WarnLevel))
	assert.Equal(t, "ERROR", loggerpkg.Severity(zapcore.ErrorLevel))
	assert.Equal(t, "FATAL", loggerpkg.Severity(zapcore.DPanicLevel))
	assert.Equal(t, "FATAL", loggerpkg.Severity(zapcore.PanicLevel))
	assert.Equal(t, "FATAL", loggerpkg.Severity(zapcore.FatalLevel))
}

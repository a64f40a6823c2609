package logger

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/jsonlogger/internal/pkg/formatter"
)

const (
	// FormatZap renders entries with the zap production JSON encoder.
	FormatZap = "zap"
)

// loggerKey is the key for the logger in the context.
type loggerKey struct{}

// Config represents the logger configuration.
type Config struct {
	// ServiceName is used as the OTel instrumentation scope and default program name.
	ServiceName string

	// Format is "zap", or a formatter schema version ("v1", "v2").
	Format string

	// Level is the minimum enabled level, e.g. "info".
	Level string

	// Output is where lines are written, stdout when nil.
	Output zapcore.WriteSyncer
}

// Init initializes a new logger and sets it in the context.
// When lp is not nil, entries are also exported through the OTel log provider.
func Init(ctx context.Context, cfg *Config, lp *sdklog.LoggerProvider) (context.Context, *zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return ctx, nil, status.Errorf(codes.InvalidArgument, "invalid log level: %v", err)
	}

	out := cfg.Output
	if out == nil {
		out = zapcore.Lock(zapcore.AddSync(os.Stdout))
	}

	var c zapcore.Core
	if strings.EqualFold(strings.TrimSpace(cfg.Format), FormatZap) {
		c = zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, level)
	} else {
		f, err := formatter.New(cfg.Format)
		if err != nil {
			return ctx, nil, err
		}
		c = NewCore(f, out, level, cfg.ServiceName)
	}

	if lp != nil {
		c = zapcore.NewTee(c, otelzap.NewCore(cfg.ServiceName, otelzap.WithLoggerProvider(lp)))
	}

	logger := zap.New(c)
	return context.WithValue(ctx, loggerKey{}, logger), logger, nil
}

// WithLogger sets the logger in the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context.
func FromContext(ctx context.Context) *zap.Logger {
	value := ctx.Value(loggerKey{})
	if value == nil {
		return zap.NewNop()
	}

	logger, ok := value.(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}

	return logger
}

package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/classifier"
)

// Version is a schema version of the emitted envelope.
type Version string

const (
	// V1Version is the legacy schema with @-prefixed keys.
	V1Version Version = "v1"
	// V2Version is the schema with unprefixed keys.
	V2Version Version = "v2"

	// recordType is the constant type of every emitted record.
	recordType = "sidekiq"
)

// Formatter renders one log call as a single newline-terminated JSON line.
type Formatter interface {
	Format(severity string, t time.Time, programName string, payload joblogsmodel.Payload, context string) string
}

// Config holds the formatter configuration.
type Config struct {
	Identity Identity
}

// Option is a functional option type that allows us to configure the formatter.
type Option func(*Config)

// WithIdentity sets the process and thread identity accessor.
func WithIdentity(identity Identity) Option {
	return func(c *Config) {
		c.Identity = identity
	}
}

func newConfig(options ...Option) *Config {
	c := &Config{Identity: RuntimeIdentity{}}
	for _, opt := range options {
		opt(c)
	}
	if c.Identity == nil {
		c.Identity = RuntimeIdentity{}
	}
	return c
}

// ParseVersion parses a schema version name such as "v1" or "V2".
func ParseVersion(s string) (Version, error) {
	switch Version(strings.ToLower(strings.TrimSpace(s))) {
	case V1Version:
		return V1Version, nil
	case V2Version:
		return V2Version, nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "unknown schema version: %q", s)
	}
}

// New creates a formatter for the given schema version.
func New(version string, options ...Option) (Formatter, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}

	if v == V1Version {
		return NewV1(options...), nil
	}
	return NewV2(options...), nil
}

// Worker returns the worker name of a logging context, its first token.
func Worker(context string) string {
	tokens := classifier.Fields(context)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// timestamp renders t in UTC as ISO 8601.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// encode serializes an envelope as one JSON line. HTML characters are kept as is.
// Envelopes hold only strings, integers, Status and RunTime values, none of which
// can fail to encode.
func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encode appends the trailing newline.
	if err := enc.Encode(v); err != nil {
		panic(fmt.Sprintf("formatter: encode envelope: %v", err))
	}
	return buf.String()
}

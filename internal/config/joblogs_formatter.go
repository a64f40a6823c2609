package config

import (
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// JobLogsFormatter holds the job logs formatter configuration.
type JobLogsFormatter struct {
	Environment

	Logging
	Otel
	Redis
	Kafka
	JobLogsFormatterConfig
}

// JobLogsFormatterConfig holds the configuration for the job logs formatter.
type JobLogsFormatterConfig struct {
	// SchemaVersion selects the envelope schema of formatted lines, "v1" or "v2".
	SchemaVersion    string `envconfig:"JOBLOGS_FORMATTER_SCHEMA_VERSION" default:"v2"`
	ProgramName      string `envconfig:"JOBLOGS_FORMATTER_PROGRAM_NAME" default:"sidekiq"`
	ParallelismLimit int    `envconfig:"JOBLOGS_FORMATTER_PARALLELISM_LIMIT" default:"5"`
	PublishToRedis   bool   `envconfig:"JOBLOGS_FORMATTER_PUBLISH_TO_REDIS" default:"true"`
}

// InitJobLogsFormatterConfig initializes the job logs formatter configuration.
func InitJobLogsFormatterConfig() (*JobLogsFormatter, error) {
	var cfg JobLogsFormatter
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}

	if cfg.JobLogsFormatterConfig.ParallelismLimit < 1 {
		return nil, status.Errorf(
			codes.InvalidArgument,
			"JOBLOGS_FORMATTER_PARALLELISM_LIMIT must be at least 1, got %d",
			cfg.JobLogsFormatterConfig.ParallelismLimit,
		)
	}

	return &cfg, nil
}

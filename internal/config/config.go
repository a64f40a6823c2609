package config

import (
	"time"
)

const envPrefix = ""

// Environment holds the deployment environment.
type Environment struct {
	Env string `envconfig:"ENV" default:"development"`
}

// Logging holds the process logger configuration.
type Logging struct {
	// Format is "zap", "v1" or "v2".
	Format string `envconfig:"LOG_FORMAT" default:"v2"`
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
}

// Otel holds the OpenTelemetry configuration.
// Exporter endpoints are read by the OTLP exporters from the standard OTEL_* variables.
type Otel struct {
	Enabled bool `envconfig:"OTEL_ENABLED" default:"false"`
}

// Redis holds the Redis configuration.
type Redis struct {
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         int           `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"5"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Kafka holds the Kafka configuration.
type Kafka struct {
	Brokers       []string `envconfig:"KAFKA_BROKERS" required:"true"`
	ProducerTopic string   `envconfig:"KAFKA_PRODUCER_TOPIC" default:"job_logs_formatted"`
	ConsumeTopics []string `envconfig:"KAFKA_CONSUME_TOPICS" default:"job_logs"`
	ConsumerGroup string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"joblogs-formatter"`
}

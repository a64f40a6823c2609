package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/hitesh22rana/jsonlogger/internal/app/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/config"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/formatter"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/kafka"
	loggerpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/logger"
	otelpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/otel"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/redis"
	svcpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/svc"
	joblogsrepo "github.com/hitesh22rana/jsonlogger/internal/repository/joblogs"
	joblogssvc "github.com/hitesh22rana/jsonlogger/internal/service/joblogs"
)

const (
	// ExitOk and ExitError are the exit codes.
	ExitOk = iota
	// ExitError is the exit code for errors.
	ExitError
)

var (
	// version is the service version.
	version string

	// name is the name of the service.
	name string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the service information
	initSvcInfo()

	// Handle OS signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load the job logs formatter configuration
	cfg, err := config.InitJobLogsFormatterConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Initialize the telemetry providers, if enabled
	var lp *sdklog.LoggerProvider
	if cfg.Otel.Enabled {
		providers, err := otelpkg.Init(ctx, svcpkg.Info().GetName(), svcpkg.Info().GetVersion())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to init telemetry: %v\n", err)
			return ExitError
		}
		defer func() {
			if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
		lp = providers.Logger
	}

	// Set up logger
	ctx, logger, err := loggerpkg.Init(ctx, &loggerpkg.Config{
		ServiceName: svcpkg.Info().GetName(),
		Format:      cfg.Logging.Format,
		Level:       cfg.Logging.Level,
	}, lp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer func() {
		if err = logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
		}
	}()

	// Initialize the formatter for delivered lines
	f, err := formatter.New(cfg.JobLogsFormatterConfig.SchemaVersion)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Initialize the redis store
	var rdb *redis.Store
	if cfg.JobLogsFormatterConfig.PublishToRedis {
		rdb, err = redis.New(ctx, &redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitError
		}
		defer rdb.Close()
	}

	// Initialize the kafka client
	kfk, err := kafka.New(ctx,
		kafka.WithBrokers(cfg.Kafka.Brokers...),
		kafka.WithConsumeTopics(cfg.Kafka.ConsumeTopics...),
		kafka.WithConsumerGroup(cfg.Kafka.ConsumerGroup),
		kafka.WithProducerTopic(cfg.Kafka.ProducerTopic),
		kafka.WithDisableAutoCommit(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer kfk.Close()

	// Initialize the job logs formatter components
	repo := joblogsrepo.New(&joblogsrepo.Config{
		ProgramName:      cfg.JobLogsFormatterConfig.ProgramName,
		ParallelismLimit: cfg.JobLogsFormatterConfig.ParallelismLimit,
		PublishToRedis:   cfg.JobLogsFormatterConfig.PublishToRedis,
	}, validator.New(), f, rdb, kfk)
	svc := joblogssvc.New(repo)
	app := joblogs.New(ctx, svc)

	// Log the job information
	logger.Info(
		"starting job",
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.String("schema_version", cfg.JobLogsFormatterConfig.SchemaVersion),
	)

	// Run the job logs formatter
	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	return ExitOk
}

// initSvcInfo initializes the job information.
func initSvcInfo() {
	svcpkg.SetVersion(version)
	svcpkg.SetName(name)
}

package joblogs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/go-playground/validator/v10"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/formatter"
	loggerpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/logger"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/redis"
	svcpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/svc"
)

const (
	// retryBackoff is the duration to wait before retrying a delivery.
	retryBackoff = time.Second

	outcomeDelivered = "delivered"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

// Config represents the repository constants configuration.
type Config struct {
	// ProgramName is used for events that do not carry one.
	ProgramName      string
	ParallelismLimit int
	PublishToRedis   bool
}

// FormattedLine is a formatted log line and the worker it belongs to.
type FormattedLine struct {
	Worker string
	Value  string
}

// Repository provides joblogs repository.
type Repository struct {
	tp        trace.Tracer
	lines     metric.Int64Counter
	cfg       *Config
	validator *validator.Validate
	formatter formatter.Formatter
	retrier   *retrier.Retrier
	rdb       *redis.Store
	kfk       *kgo.Client
}

// New creates a new joblogs repository.
func New(
	cfg *Config,
	validator *validator.Validate,
	f formatter.Formatter,
	rdb *redis.Store,
	kfk *kgo.Client,
) *Repository {
	lines, err := otel.Meter(svcpkg.Info().GetName()).Int64Counter(
		"joblogs.formatter.lines",
		metric.WithDescription("Job log events handled by the formatter, by outcome."),
	)
	if err != nil {
		lines = noop.Int64Counter{}
	}

	return &Repository{
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		lines:     lines,
		cfg:       cfg,
		validator: validator,
		formatter: f,
		retrier:   retrier.New(retrier.ConstantBackoff(1, retryBackoff), retryClassifier{}),
		rdb:       rdb,
		kfk:       kfk,
	}
}

// Run consumes raw job log events and delivers one formatted line per event.
func (r *Repository) Run(ctx context.Context) error {
	logger := loggerpkg.FromContext(ctx)

	for {
		// Check context cancellation before processing
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Continue processing
		}

		fetches := r.kfk.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return status.Error(codes.Canceled, "client closed")
		}

		if fetches.Empty() {
			continue
		}

		for _, fetchErr := range fetches.Errors() {
			logger.Error("error while fetching records",
				zap.String("topic", fetchErr.Topic),
				zap.Int32("partition", fetchErr.Partition),
				zap.Error(fetchErr.Err),
			)
		}

		var (
			handled   = make([]*kgo.Record, 0, fetches.NumRecords())
			handledMu sync.Mutex
		)

		// Error group for running multiple goroutines
		eg, groupCtx := errgroup.WithContext(context.WithoutCancel(ctx))
		eg.SetLimit(r.cfg.ParallelismLimit)

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			eg.Go(func() error {
				if err := r.processRecord(groupCtx, record); err != nil {
					r.count(groupCtx, outcomeFailed)
					logger.Error("failed to deliver formatted log line",
						zap.String("topic", record.Topic),
						zap.Int64("offset", record.Offset),
						zap.Int32("partition", record.Partition),
						zap.Error(err),
					)
					return nil
				}

				handledMu.Lock()
				handled = append(handled, record)
				handledMu.Unlock()
				return nil
			})
		}

		//nolint:errcheck // Record failures are logged, the group never returns an error
		eg.Wait()

		if len(handled) == 0 {
			continue
		}

		if err := r.kfk.CommitRecords(context.WithoutCancel(ctx), handled...); err != nil {
			logger.Error("failed to commit records", zap.Int("records", len(handled)), zap.Error(err))
		}
	}
}

// processRecord formats and delivers a single record.
// Records that cannot be decoded are skipped and reported as handled.
func (r *Repository) processRecord(ctx context.Context, record *kgo.Record) (err error) {
	ctx, span := r.tp.Start(ctx, "joblogs.Run.processRecord")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	line, err := r.Format(ctx, record.Value)
	if err != nil {
		loggerpkg.FromContext(ctx).Warn("skipping invalid job log event",
			zap.String("topic", record.Topic),
			zap.Int64("offset", record.Offset),
			zap.Int32("partition", record.Partition),
			zap.String("value", string(record.Value)),
			zap.Error(err),
		)
		r.count(ctx, outcomeSkipped)
		return nil
	}

	if err = r.Publish(ctx, line); err != nil {
		return err
	}

	err = r.retrier.RunCtx(ctx, func(ctx context.Context) error {
		return r.kfk.ProduceSync(ctx, &kgo.Record{
			Key:   []byte(line.Worker),
			Value: []byte(line.Value),
		}).FirstErr()
	})
	if err != nil {
		return err
	}

	r.count(ctx, outcomeDelivered)
	return nil
}

func (r *Repository) count(ctx context.Context, outcome string) {
	r.lines.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Format decodes a raw job log event and renders it as a formatted line.
func (r *Repository) Format(_ context.Context, value []byte) (*FormattedLine, error) {
	var event joblogsmodel.JobLogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to unmarshal job log event: %v", err)
	}

	if err := r.validator.Struct(&event); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid job log event: %v", err)
	}

	programName := event.ProgramName
	if programName == "" {
		programName = r.cfg.ProgramName
	}

	return &FormattedLine{
		Worker: formatter.Worker(event.Context),
		Value:  r.formatter.Format(event.Severity, event.Time, programName, event.Payload(), event.Context),
	}, nil
}

// Publish publishes the line to the channel of its worker.
func (r *Repository) Publish(ctx context.Context, line *FormattedLine) error {
	if !r.cfg.PublishToRedis {
		return nil
	}

	return r.retrier.RunCtx(ctx, func(ctx context.Context) error {
		_, err := r.rdb.Publish(ctx, redis.GetJobLogsChannel(line.Worker), line.Value)
		return err
	})
}

// retryClassifier retries every error except the ones a retry cannot fix.
type retryClassifier struct{}

func (retryClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case status.Code(err) == codes.FailedPrecondition, status.Code(err) == codes.InvalidArgument:
		return retrier.Fail
	default:
		return retrier.Retry
	}
}

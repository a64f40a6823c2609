//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package joblogs

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	loggerpkg "github.com/hitesh22rana/jsonlogger/internal/pkg/logger"
)

// Service provides joblogs related operations.
type Service interface {
	Run(ctx context.Context) error
}

// Joblogs represents the job logs formatter.
type Joblogs struct {
	logger *zap.Logger
	svc    Service
}

// New creates a new job logs formatter.
func New(ctx context.Context, svc Service) *Joblogs {
	return &Joblogs{
		logger: loggerpkg.FromContext(ctx),
		svc:    svc,
	}
}

// Run starts the job logs formatter and blocks until ctx is done or the service fails.
// A shutdown caused by cancellation is not an error.
func (j *Joblogs) Run(ctx context.Context) error {
	err := j.svc.Run(ctx)
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		status.Code(err) == codes.Canceled:
		j.logger.Info("successfully exited the joblogs formatter")
		return nil
	default:
		j.logger.Error("error occurred while running the joblogs formatter", zap.Error(err))
		return err
	}
}

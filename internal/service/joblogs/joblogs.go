//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package joblogs

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repository consumes raw job log events and delivers their formatted lines.
type Repository interface {
	Run(ctx context.Context) error
}

// Service runs the job log formatting pipeline.
type Service struct {
	repo Repository
}

// New creates a new job log formatting service.
func New(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Run formats job log events until ctx is done or the pipeline fails.
// Shutdown errors are returned as is; any other failure keeps its code and
// is reported as a formatting failure.
func (s *Service) Run(ctx context.Context) error {
	err := s.repo.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), status.Code(err) == codes.Canceled:
		return err
	default:
		return status.Errorf(status.Code(err), "failed to format job logs: %v", err)
	}
}

package integrity

import (
	"context"

	"sound-sync/feature/downloads"
	"sound-sync/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks over the local download state.
type Service struct {
	store  *downloads.Service
	dir    string
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(store *downloads.Service, dir string, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		dir:    dir,
		logger: logger,
	}
}

// CheckFiles verifies completed downloads against the files on disk.
func (s *Service) CheckFiles(ctx context.Context) (*checks.FilesReport, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckFiles(ctx, rows, s.dir)
}

// CheckOrphans reports files no download record claims.
func (s *Service) CheckOrphans(ctx context.Context) (*checks.OrphanReport, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckOrphans(ctx, rows, s.dir)
}

// FixOrphans deletes the given orphan files.
func (s *Service) FixOrphans(ctx context.Context, orphans []string) error {
	return checks.FixOrphans(ctx, s.dir, s.logger, orphans)
}

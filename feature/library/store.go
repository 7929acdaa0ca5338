package library

import (
	"context"
	"fmt"
	"sync"

	libsync "sound-sync/core/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier receives job submissions triggered by effective mutations.
// In the daemon this is the job scheduler.
type Notifier interface {
	Submit(name string, expedited bool)
}

// Store is the persisted desired-state set. Mutations are atomic
// read-modify-writes serialized by a mutex on top of the primary-key
// constraint, and every mutation that actually changed the set submits an
// expedited refresh. No-op mutations submit nothing.
type Store struct {
	db     *gorm.DB
	notify Notifier
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStore creates the desired-state store. notify may be nil for
// read-only CLI use.
func NewStore(db *gorm.DB, notify Notifier, logger *zap.Logger) *Store {
	return &Store{db: db, notify: notify, logger: logger}
}

// Migrate creates the backing table if needed.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&DesiredSound{})
}

// Get returns the desired content IDs in stable order.
func (s *Store) Get(ctx context.Context) ([]libsync.ContentID, error) {
	var rows []DesiredSound
	if err := s.db.WithContext(ctx).Order("content_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read desired set: %w", err)
	}
	ids := make([]libsync.ContentID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, libsync.ContentID(r.ContentID))
	}
	return ids, nil
}

// Add inserts a content ID into the desired set. Returns true if it was
// newly added; adding an ID already present is a no-op and dispatches no
// job.
func (s *Store) Add(ctx context.Context, id libsync.ContentID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&DesiredSound{ContentID: string(id)})
	if res.Error != nil {
		return false, fmt.Errorf("add %q to desired set: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.logger.Info("sound added to library", zap.String("content_id", string(id)))
	s.submitRefresh()
	return true, nil
}

// Remove deletes a content ID from the desired set. Returns true if it
// was actually removed.
func (s *Store) Remove(ctx context.Context, id libsync.ContentID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).Delete(&DesiredSound{ContentID: string(id)})
	if res.Error != nil {
		return false, fmt.Errorf("remove %q from desired set: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.logger.Info("sound removed from library", zap.String("content_id", string(id)))
	s.submitRefresh()
	return true, nil
}

func (s *Store) submitRefresh() {
	if s.notify == nil {
		return
	}
	s.notify.Submit(libsync.JobRefresh, true)
}

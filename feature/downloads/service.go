package downloads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sound-sync/core/storage"
	libsync "sound-sync/core/sync"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the content store: it owns the download records and executes
// add/remove/resume commands by transferring segment objects from the
// remote bucket into the local download directory. Commands are fire and
// forget; a background worker drains the queue.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	dir    string
	logger *zap.Logger

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates the transfer service. Start must be called to launch
// the worker; Close stops it.
func NewService(db *gorm.DB, client storage.Client, bucket, dir string, logger *zap.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		dir:    dir,
		logger: logger,
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Migrate creates the backing table if needed.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&DownloadRow{})
}

// Start launches the background transfer worker.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Close stops the worker and waits for an in-flight transfer to finish.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// List returns all download records in path order.
func (s *Service) List(ctx context.Context) ([]DownloadRow, error) {
	var rows []DownloadRow
	if err := s.db.WithContext(ctx).Order("path").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	return rows, nil
}

// EnqueueAdd records a segment as queued under the given hash and wakes
// the worker. Re-adding an existing path resets it to queued with the new
// hash.
func (s *Service) EnqueueAdd(ctx context.Context, path libsync.SegmentPath, hash libsync.ContentHash, expedited bool) error {
	row := DownloadRow{
		Path:   string(path),
		Hash:   string(hash),
		Status: string(libsync.StatusQueued),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"hash", "status", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("enqueue add %q: %w", path, err)
	}
	s.signal()
	return nil
}

// EnqueueRemove drops the record and deletes the local file.
func (s *Service) EnqueueRemove(ctx context.Context, path libsync.SegmentPath, expedited bool) error {
	if err := s.db.WithContext(ctx).Delete(&DownloadRow{Path: string(path)}).Error; err != nil {
		return fmt.Errorf("enqueue remove %q: %w", path, err)
	}
	local, err := s.localPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove local segment %q: %w", path, err)
	}
	return nil
}

// ResumeAll requeues failed transfers and wakes the worker.
func (s *Service) ResumeAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Model(&DownloadRow{}).
		Where("status = ?", string(libsync.StatusFailed)).
		Updates(map[string]any{"status": string(libsync.StatusQueued)}).Error
	if err != nil {
		return fmt.Errorf("resume downloads: %w", err)
	}
	s.signal()
	return nil
}

func (s *Service) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// worker drains the queue whenever woken, one transfer at a time.
func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}
		s.drain()
	}
}

func (s *Service) drain() {
	for {
		if s.ctx.Err() != nil {
			return
		}

		var row DownloadRow
		err := s.db.WithContext(s.ctx).
			Where("status = ?", string(libsync.StatusQueued)).
			Order("updated_at").
			First(&row).Error
		if err == gorm.ErrRecordNotFound {
			return
		}
		if err != nil {
			s.logger.Error("transfer queue read failed", zap.Error(err))
			return
		}

		s.setStatus(row.Path, libsync.StatusActive)
		if err := s.transfer(s.ctx, libsync.SegmentPath(row.Path)); err != nil {
			s.logger.Warn("segment transfer failed",
				zap.String("path", row.Path), zap.Error(err))
			s.setStatus(row.Path, libsync.StatusFailed)
			continue
		}
		s.setStatus(row.Path, libsync.StatusComplete)
		s.logger.Info("segment downloaded", zap.String("path", row.Path))
	}
}

func (s *Service) setStatus(path string, status libsync.DownloadStatus) {
	err := s.db.Model(&DownloadRow{}).
		Where("path = ?", path).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()}).Error
	if err != nil {
		s.logger.Error("download status update failed",
			zap.String("path", path), zap.Error(err))
	}
}

// transfer streams one segment object from the remote bucket to the local
// download directory.
func (s *Service) transfer(ctx context.Context, path libsync.SegmentPath) error {
	local, err := s.localPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("create segment directory: %w", err)
	}

	info, err := s.client.StatObject(ctx, s.bucket, string(path), minio.StatObjectOptions{})
	if err != nil {
		return fmt.Errorf("stat segment %q: %w", path, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, string(path), minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("fetch segment %q: %w", path, err)
	}
	defer obj.Close()

	tmp := local + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create segment file: %w", err)
	}

	n, err := io.Copy(f, obj)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write segment %q: %w", path, err)
	}
	if n != info.Size {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("segment %q truncated: got %d of %d bytes", path, n, info.Size)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close segment file: %w", err)
	}
	if err := os.Rename(tmp, local); err != nil {
		return fmt.Errorf("finalize segment %q: %w", path, err)
	}
	return nil
}

// localPath maps a segment path into the download directory, rejecting
// anything that would escape it.
func (s *Service) localPath(path libsync.SegmentPath) (string, error) {
	p := filepath.Clean(string(path))
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "..") {
		return "", fmt.Errorf("invalid segment path %q", path)
	}
	return filepath.Join(s.dir, p), nil
}

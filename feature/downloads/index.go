package downloads

import (
	"context"
	"database/sql"
	"fmt"

	libsync "sound-sync/core/sync"

	"gorm.io/gorm"
)

// Index exposes the download records as a lazy cursor. Every Scan opens a
// fresh cursor so each reconciliation pass diffs against one consistent
// snapshot.
type Index struct {
	db *gorm.DB
}

// NewIndex creates an index over the download records table.
func NewIndex(db *gorm.DB) *Index {
	return &Index{db: db}
}

// Scan opens a cursor over all download records in path order.
func (i *Index) Scan(ctx context.Context) (libsync.RecordCursor, error) {
	rows, err := i.db.WithContext(ctx).Model(&DownloadRow{}).Order("path").Rows()
	if err != nil {
		return nil, fmt.Errorf("scan download index: %w", err)
	}
	return &rowCursor{db: i.db, rows: rows}, nil
}

type rowCursor struct {
	db   *gorm.DB
	rows *sql.Rows
}

func (c *rowCursor) Next() (libsync.DownloadRecord, bool, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return libsync.DownloadRecord{}, false, fmt.Errorf("download index cursor: %w", err)
		}
		return libsync.DownloadRecord{}, false, nil
	}
	var row DownloadRow
	if err := c.db.ScanRows(c.rows, &row); err != nil {
		return libsync.DownloadRecord{}, false, fmt.Errorf("download index cursor: %w", err)
	}
	return row.Record(), true, nil
}

func (c *rowCursor) Close() error {
	return c.rows.Close()
}

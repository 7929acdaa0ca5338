package downloads

import (
	"time"

	libsync "sound-sync/core/sync"
)

// DownloadRow is one entry of the local download index. Rows are owned by
// the transfer service; the sync engine only reads them through the index
// cursor.
type DownloadRow struct {
	Path      string    `gorm:"primaryKey;column:path" json:"path"`
	Hash      string    `gorm:"column:hash" json:"hash"`
	Status    string    `gorm:"column:status" json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (DownloadRow) TableName() string {
	return "download_records"
}

// Record converts the row to the engine's view of it.
func (r DownloadRow) Record() libsync.DownloadRecord {
	return libsync.DownloadRecord{
		Path:   libsync.SegmentPath(r.Path),
		Hash:   libsync.ContentHash(r.Hash),
		Status: libsync.DownloadStatus(r.Status),
	}
}

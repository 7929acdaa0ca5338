package downloads

import (
	"context"
	"testing"
	"time"

	libsync "sound-sync/core/sync"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestIndex_Scan(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"path", "hash", "status", "updated_at"}).
		AddRow("ocean-waves/128", "h1", "complete", time.Now()).
		AddRow("rainfall/128", "h2", "queued", time.Now())
	mock.ExpectQuery("SELECT \\* FROM `download_records`").WillReturnRows(rows)

	idx := NewIndex(db)
	cur, err := idx.Scan(context.Background())
	require.NoError(t, err)
	defer cur.Close()

	var got []libsync.DownloadRecord
	for {
		rec, ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec)
	}

	assert.Equal(t, []libsync.DownloadRecord{
		{Path: "ocean-waves/128", Hash: "h1", Status: libsync.StatusComplete},
		{Path: "rainfall/128", Hash: "h2", Status: libsync.StatusQueued},
	}, got)
}

func TestIndex_Scan_Empty(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"path", "hash", "status", "updated_at"})
	mock.ExpectQuery("SELECT \\* FROM `download_records`").WillReturnRows(rows)

	idx := NewIndex(db)
	cur, err := idx.Scan(context.Background())
	require.NoError(t, err)
	defer cur.Close()

	_, ok, err := cur.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

package checks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"sound-sync/feature/downloads"
)

// OrphanReport lists files in the download directory that no download
// record claims, including abandoned partial transfers.
type OrphanReport struct {
	Orphans []string `json:"orphans"`
}

// CheckOrphans walks the download directory and reports every file with
// no matching record. A missing directory is an empty report, not an
// error.
func CheckOrphans(ctx context.Context, rows []downloads.DownloadRow, dir string) (*OrphanReport, error) {
	known := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		known[filepath.Join(dir, filepath.Clean(row.Path))] = struct{}{}
	}

	report := &OrphanReport{Orphans: []string{}}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := known[path]; ok {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			rel = path
		}
		report.Orphans = append(report.Orphans, rel)
		return nil
	})
	if os.IsNotExist(err) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walk download directory: %w", err)
	}
	return report, nil
}

// FixOrphans deletes the given orphan files from the download directory.
func FixOrphans(ctx context.Context, dir string, logger *zap.Logger, orphans []string) error {
	for _, rel := range orphans {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.Clean(rel))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove orphan %q: %w", rel, err)
		}
		logger.Info("orphan file removed", zap.String("file", rel))
	}
	return nil
}

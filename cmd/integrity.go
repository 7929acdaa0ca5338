package cmd

import (
	"context"
	"fmt"

	"sound-sync/core/config"
	"sound-sync/core/database"
	"sound-sync/core/logger"
	"sound-sync/core/storage"
	"sound-sync/feature/downloads"
	"sound-sync/feature/integrity"

	"github.com/spf13/cobra"
)

var fixOrphans bool

// integrityCmd verifies the local download state against disk.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Verify downloaded segments against their recorded hashes",
	Long: `Re-hashes every completed download and reports missing or corrupted
files, plus files in the download directory no record claims.

A bad file is repaired by the next sync pass after its record or the file
itself is removed.`,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixOrphans, "fix-orphans", false, "Delete unclaimed files from the download directory")

	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	store := downloads.NewService(db, client, cfg.Storage.Bucket, cfg.Sync.DownloadDir, l)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate download records: %w", err)
	}

	svc := integrity.NewService(store, cfg.Sync.DownloadDir, l)

	files, err := svc.CheckFiles(ctx)
	if err != nil {
		return fmt.Errorf("files check failed: %w", err)
	}
	orphans, err := svc.CheckOrphans(ctx)
	if err != nil {
		return fmt.Errorf("orphans check failed: %w", err)
	}

	fmt.Println("\n--- Download Integrity ---")
	fmt.Printf("Checked:     %d\n", files.Checked)
	fmt.Printf("Missing:     %d\n", len(files.Missing))
	for _, p := range files.Missing {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Printf("Mismatched:  %d\n", len(files.Mismatched))
	for _, p := range files.Mismatched {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Printf("Orphans:     %d\n", len(orphans.Orphans))
	for _, p := range orphans.Orphans {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Println("--------------------------")

	if fixOrphans && len(orphans.Orphans) > 0 {
		if err := svc.FixOrphans(ctx, orphans.Orphans); err != nil {
			return fmt.Errorf("orphan cleanup failed: %w", err)
		}
		fmt.Printf("Deleted %d orphan file(s)\n", len(orphans.Orphans))
	}

	if len(files.Missing) > 0 || len(files.Mismatched) > 0 {
		return fmt.Errorf("%d downloaded segment(s) failed verification", len(files.Missing)+len(files.Mismatched))
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"sound-sync/core/config"
	"sound-sync/core/database"
	"sound-sync/core/logger"
	"sound-sync/core/scheduler"
	"sound-sync/core/storage"
	libsync "sound-sync/core/sync"

	"sound-sync/feature/catalog"
	"sound-sync/feature/downloads"
	"sound-sync/feature/entitlement"
	"sound-sync/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	expeditedSync bool
	bitrateSync   int
)

// syncCmd runs a single reconciliation pass in the foreground.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	Long: `Run a single reconciliation pass against the catalog and exit.

Diffs the local download records against the desired set, enqueues the
resulting transfers, waits for them to drain, and reports the outcome.

Examples:
  # One ordinary pass at the configured bitrate
  sound-sync sync

  # Expedited pass at an explicit bitrate
  sound-sync sync --expedited --bitrate 320`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&expeditedSync, "expedited", false, "Mark enqueued transfers as expedited")
	syncCmd.Flags().IntVar(&bitrateSync, "bitrate", 0, "Bitrate to reconcile (0 = configured default)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	bitrate := cfg.Sync.Bitrate
	if bitrateSync > 0 {
		bitrate = bitrateSync
	}
	l.Info("Starting reconciliation pass", zap.Int("bitrate", bitrate))

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if ok, err := client.BucketExists(ctx, cfg.Storage.Bucket); err != nil {
		return fmt.Errorf("failed to reach storage bucket: %w", err)
	} else if !ok {
		return fmt.Errorf("storage bucket %q does not exist", cfg.Storage.Bucket)
	}

	// Wire collaborators
	cat := catalog.New(client, cfg.Storage.Bucket, cfg.Catalog)

	svc := downloads.NewService(db, client, cfg.Storage.Bucket, cfg.Sync.DownloadDir, l)
	if err := svc.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate download records: %w", err)
	}
	svc.Start()
	defer svc.Close()

	gate, err := entitlement.FromConfig(cfg.Entitlement)
	if err != nil {
		return fmt.Errorf("failed to configure entitlement gate: %w", err)
	}

	lib := library.NewStore(db, nil, l)
	if err := lib.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate library: %w", err)
	}
	engine := libsync.NewEngine(lib, cat, downloads.NewIndex(db), svc, gate, nil, l)

	report, outcome := engine.Run(ctx, bitrate, expeditedSync)
	printPassReport(l, report, outcome)

	if outcome == scheduler.Fail {
		return fmt.Errorf("reconciliation failed terminally")
	}
	if outcome == scheduler.Retry {
		return fmt.Errorf("reconciliation hit a transient failure; run again")
	}
	return nil
}

// printPassReport prints a formatted pass report using logger.
func printPassReport(l *zap.Logger, report *libsync.PassReport, outcome scheduler.Outcome) {
	l.Info("Reconciliation report",
		zap.String("outcome", outcome.String()),
		zap.Bool("skipped", report.Skipped),
		zap.Int("desired", report.Desired),
		zap.Int("resolved", report.Resolved),
		zap.Int("satisfied", report.Satisfied),
		zap.Int("removed", report.Removed),
		zap.Int("added", report.Added),
	)
}

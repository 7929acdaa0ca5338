package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sound-sync/core/config"
	"sound-sync/core/database"
	"sound-sync/core/loader"
	"sound-sync/core/logger"
	"sound-sync/core/middleware/auth"
	"sound-sync/core/middleware/rayid"
	"sound-sync/core/scheduler"
	"sound-sync/core/storage"
	libsync "sound-sync/core/sync"

	"sound-sync/feature/catalog"
	"sound-sync/feature/downloads"
	"sound-sync/feature/entitlement"
	"sound-sync/feature/integrity"
	"sound-sync/feature/library"
	"sound-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "sound-sync/docs/swagger"
)

// @title Sound Sync API
// @version 1.0
// @description API for managing the offline sound library.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync daemon",
	Long:  `Starts the background sync scheduler and the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		// Unreachable storage is not fatal: the daemon may start offline
		// and the scheduler's connectivity gate holds passes until the
		// network is back.
		if ok, err := store.BucketExists(context.Background(), cfg.Storage.Bucket); err != nil {
			logg.Warn("Storage bucket unreachable, passes wait for connectivity", zap.Error(err))
		} else if !ok {
			logg.Fatal("Storage bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 5. Domain wiring: catalog, downloads, entitlement, status
		cat := catalog.New(store, cfg.Storage.Bucket, cfg.Catalog)

		svc := downloads.NewService(db, store, cfg.Storage.Bucket, cfg.Sync.DownloadDir, logg)
		if err := svc.Migrate(); err != nil {
			logg.Fatal("Failed to migrate download records", zap.Error(err))
		}
		svc.Start()
		defer svc.Close()

		gate, err := entitlement.FromConfig(cfg.Entitlement)
		if err != nil {
			logg.Fatal("Failed to configure entitlement gate", zap.Error(err))
		}

		reporter := status.NewReporter()

		// 6. Scheduler + engine
		sched := scheduler.New(logg, scheduler.ProbeFromConfig(cfg.Scheduler), cfg.Scheduler)
		defer sched.Close()

		lib := library.NewStore(db, sched, logg)
		if err := lib.Migrate(); err != nil {
			logg.Fatal("Failed to migrate library", zap.Error(err))
		}

		engine := libsync.NewEngine(lib, cat, downloads.NewIndex(db), svc, gate, reporter, logg)
		sched.Register(libsync.JobRefresh, func(ctx context.Context, expedited bool) scheduler.Outcome {
			_, outcome := engine.Run(ctx, cfg.Sync.Bitrate, expedited)
			return outcome
		})

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 8. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(library.NewFeature(lib, logg))
		mgr.Register(downloads.NewFeature(svc, logg))
		mgr.Register(integrity.NewFeature(svc, cfg.Sync.DownloadDir, logg))
		mgr.Register(status.NewFeature(reporter, logg))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// HandleRefresh submits an expedited reconciliation pass.
		// @Summary Trigger sync
		// @Description Submit an expedited reconciliation pass. Returns immediately; the pass runs in the background.
		// @Tags sync
		// @Produce json
		// @Success 202 {object} map[string]bool "submitted"
		// @Router /refresh [post]
		app.Post("/refresh", func(c *fiber.Ctx) error {
			sched.Submit(libsync.JobRefresh, true)
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"submitted": true})
		})

		// 9. Background refresh: one pass on startup, then periodic.
		sched.Submit(libsync.JobRefresh, false)
		stopTicker := make(chan struct{})
		if cfg.Sync.RefreshIntervalSeconds > 0 {
			ticker := time.NewTicker(time.Duration(cfg.Sync.RefreshIntervalSeconds) * time.Second)
			go func() {
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						sched.Submit(libsync.JobRefresh, false)
					case <-stopTicker:
						return
					}
				}
			}()
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		close(stopTicker)
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

package cmd

import (
	"context"
	"fmt"

	"sound-sync/core/config"
	"sound-sync/core/database"
	"sound-sync/core/logger"
	libsync "sound-sync/core/sync"
	"sound-sync/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// libraryCmd is the parent command for desired-set operations.
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the offline library",
	Long: `Manage the set of sounds marked for offline availability.

Changes take effect on the next reconciliation pass; run "sound-sync sync"
to converge immediately.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sounds marked for offline availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		ids, err := store.Get(context.Background())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("library is empty")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [content-id]",
	Short: "Mark a sound for offline availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		added, err := store.Add(context.Background(), libsync.ContentID(args[0]))
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("%s is already in the library\n", args[0])
			return nil
		}
		fmt.Printf("added %s\n", args[0])
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [content-id]",
	Short: "Unmark a sound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		removed, err := store.Remove(context.Background(), libsync.ContentID(args[0]))
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("%s is not in the library\n", args[0])
			return nil
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)

	RootCmd.AddCommand(libraryCmd)
}

// openLibrary connects to the local database and returns the desired-set
// store without a notifier; CLI mutations are picked up by the daemon's
// next periodic pass.
func openLibrary() (*library.Store, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := library.NewStore(db, nil, l)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate library: %w", err)
	}
	return store, nil
}

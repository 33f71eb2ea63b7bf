// Command prune-files removes resume objects that no file record references.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/controller/file"
	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "only list orphaned objects")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	storage, err := file.NewStorageClient(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("storage failed to initialize", "error", err)
	}
	if storage == nil {
		fmt.Println("No STORAGE_DRIVER configured, nothing to prune.")
		return
	}

	db, err := database.GetMainDB(cfg.DB)
	if err != nil {
		logger.Fatal("database failed to initialize", "error", err)
	}
	defer func() { _ = db.Close() }()

	prefix := file.ResumeObjectPrefix + "/"
	if *dryRun {
		orphans, err := file.FindOrphans(ctx, db, storage, prefix)
		if err != nil {
			logger.Fatal("failed to list orphaned objects", "error", err)
		}
		for _, name := range orphans {
			fmt.Println(name)
		}
		fmt.Printf("%d orphaned object(s)\n", len(orphans))
		return
	}

	removed, err := file.PruneOrphans(ctx, db, storage, prefix)
	for _, name := range removed {
		logger.Info("removed orphaned object", "object", name)
	}
	if err != nil {
		logger.Fatal("prune stopped", "removed", len(removed), "error", err)
	}
	fmt.Printf("Removed %d orphaned object(s)\n", len(removed))
}

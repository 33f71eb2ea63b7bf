package file

import (
	"context"
	"fmt"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/model"
)

// FindOrphans lists bucket objects under prefix that no file record references
func FindOrphans(ctx context.Context, db *database.DBinstanceStruct, storage StorageClient, prefix string) ([]string, error) {
	objects, err := storage.ListFiles(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var referenced []string
	if err := db.WithContext(ctx).
		Model(&model.File{}).
		Where("storage_object_name <> ''").
		Pluck("storage_object_name", &referenced).Error; err != nil {
		return nil, fmt.Errorf("failed to load file records: %w", err)
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		inUse[name] = struct{}{}
	}

	var orphans []string
	for _, name := range objects {
		if _, ok := inUse[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans, nil
}

// PruneOrphans deletes every orphaned object and returns the removed names.
// It stops at the first failed delete.
func PruneOrphans(ctx context.Context, db *database.DBinstanceStruct, storage StorageClient, prefix string) ([]string, error) {
	orphans, err := FindOrphans(ctx, db, storage, prefix)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(orphans))
	for _, name := range orphans {
		if err := storage.DeleteFile(ctx, name); err != nil {
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}

package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shipment-tracker/internal/core/logger"
	tracking "shipment-tracker/internal/features/tracking/domain"
	"shipment-tracker/internal/features/watchlist/domain"

	"go.uber.org/zap"
)

// legacySuffix locates the pre-courier v1 file next to the v2 file.
// v1 entries did not record a courier; they are migrated as Blue Dart.
const legacySuffix = "_v2"

// FileRepository implements ports.Repository on a single JSON file.
// Saves replace the whole file through a temp-file rename so a crash
// mid-write can never leave a truncated watchlist behind. Concurrent
// external writers are out of scope and not locked against.
type FileRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileRepository creates a repository at the given path and migrates
// the legacy v1 file if one exists and the v2 file does not yet.
func NewFileRepository(path string) *FileRepository {
	r := &FileRepository{
		path:   path,
		logger: logger.Get(),
	}
	r.migrateLegacy()
	return r
}

// Load reads the watchlist. A missing file yields an empty watchlist.
func (r *FileRepository) Load() (domain.Watchlist, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Watchlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}

	var list domain.Watchlist
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}
	if list == nil {
		list = domain.Watchlist{}
	}
	return list, nil
}

// Save atomically replaces the watchlist file.
func (r *FileRepository) Save(list domain.Watchlist) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp watchlist: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp watchlist: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace watchlist: %w", err)
	}
	return nil
}

// legacyEntry is the v1 on-disk shape: no courier field.
type legacyEntry struct {
	Status      string          `json:"status"`
	LastChecked string          `json:"last_checked"`
	Summary     *domain.Summary `json:"summary"`
}

// migrateLegacy converts a v1 file into the v2 format once. Migration
// failures are logged and ignored; a fresh empty watchlist is always a
// valid fallback.
func (r *FileRepository) migrateLegacy() {
	if !strings.Contains(r.path, legacySuffix) {
		return
	}
	legacyPath := strings.Replace(r.path, legacySuffix, "", 1)

	if _, err := os.Stat(r.path); err == nil {
		return // v2 already exists
	}
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return
	}

	var old map[string]legacyEntry
	if err := json.Unmarshal(data, &old); err != nil {
		r.logger.Warn("Skipping unreadable legacy watchlist",
			zap.String("path", legacyPath),
			zap.Error(err),
		)
		return
	}

	list := domain.Watchlist{}
	for id, entry := range old {
		status := domain.CoarseStatusPending
		if entry.Status == string(domain.CoarseStatusDelivered) {
			status = domain.CoarseStatusDelivered
		}
		list[id] = domain.Entry{
			TrackingID: id,
			Courier:    tracking.CourierBlueDart, // v1 predates multi-courier
			Status:     status,
			Summary:    entry.Summary,
		}
	}

	if err := r.Save(list); err != nil {
		r.logger.Warn("Failed to write migrated watchlist", zap.Error(err))
		return
	}
	r.logger.Info("Migrated legacy watchlist",
		zap.String("from", legacyPath),
		zap.Int("entries", len(list)),
	)
}

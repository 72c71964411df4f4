package util

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// StartUploadCleanupJob removes saved spreadsheet uploads older than maxAge,
// once at startup and then every 24 hours, until stop is closed.
func StartUploadCleanupJob(dir string, maxAge time.Duration, stop <-chan struct{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in upload cleanup job", "panic", r)
			}
		}()

		slog.Info("Upload cleanup job: Initial run starting", "dir", dir)
		CleanupOldUploads(dir, maxAge, time.Now())

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				slog.Info("Upload cleanup job: Scheduled run starting", "dir", dir)
				CleanupOldUploads(dir, maxAge, now)
			}
		}
	}()

	slog.Info("Upload cleanup job started successfully", "max_age", maxAge.String())
}

// CleanupOldUploads deletes regular files in dir last modified before
// now-maxAge and returns how many were removed.
func CleanupOldUploads(dir string, maxAge time.Duration, now time.Time) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Error("CleanupOldUploads: Failed to read upload dir", "error", err, "dir", dir)
		return 0
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("CleanupOldUploads: Failed to remove upload", "error", err, "path", path)
			continue
		}
		removed++
	}

	slog.Info("CleanupOldUploads: Completed", "removed", removed, "dir", dir)
	return removed
}

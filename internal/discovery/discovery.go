package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"codexport/internal/domain"
)

// ignoredDirs are never descended into, at any depth
var ignoredDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	"venv":          true,
	"env":           true,
	"node_modules":  true,
	".vscode":       true,
	".upm":          true,
	".pythonlibs":   true,
	"pycache":       true,
	".cache":        true,
}

// IsIgnoredDir reports whether a directory with this base name is skipped
func IsIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

// DiscoveryService builds the ordered entry list for a directory tree
type DiscoveryService interface {
	Scan(ctx context.Context, root string) (domain.ScanResult, error)
}

// discoveryService is the concrete implementation
type discoveryService struct {
	logger   *zap.Logger
	excluded map[string]bool
}

// NewDiscoveryService creates a new discovery service. excluded holds slash
// separated paths relative to the scan root that are never listed.
func NewDiscoveryService(logger *zap.Logger, excluded []string) DiscoveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ds := &discoveryService{
		logger:   logger,
		excluded: make(map[string]bool, len(excluded)),
	}
	for _, p := range excluded {
		ds.excluded[p] = true
	}
	return ds
}

// Scan walks root top-down. Each visited directory contributes its own entry
// (except the root), then its supported files in sorted order, then the
// entries of its subdirectories. Unreadable paths are skipped.
func (ds *discoveryService) Scan(ctx context.Context, root string) (domain.ScanResult, error) {
	result := domain.ScanResult{Root: root}

	info, err := os.Stat(root)
	if err != nil {
		return result, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	if err := ds.walk(ctx, root, ".", &result); err != nil {
		return result, err
	}

	ds.logger.Debug("scan completed",
		zap.String("root", root),
		zap.Int("dirs", result.Dirs),
		zap.Int("files", result.Files),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// walk visits one directory; rel is its slash separated path below root
func (ds *discoveryService) walk(ctx context.Context, root, rel string, result *domain.ScanResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirPath := filepath.Join(root, filepath.FromSlash(rel))
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		if rel == "." {
			return fmt.Errorf("failed to scan %s: %w", root, err)
		}
		ds.logger.Debug("skipping unreadable directory", zap.String("path", rel), zap.Error(err))
		result.Skipped++
		return nil
	}

	if rel != "." {
		result.Entries = append(result.Entries, domain.Entry{Path: rel, IsDir: true})
		result.Dirs++
	}

	var files, subdirs []string
	for _, d := range dirEntries {
		name := d.Name()
		isDir := d.IsDir()

		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(dirPath, name))
			if err != nil {
				ds.logger.Debug("skipping broken link", zap.String("path", path.Join(rel, name)), zap.Error(err))
				result.Skipped++
				continue
			}
			if target.IsDir() {
				// linked directories are not followed
				continue
			}
			isDir = false
		}

		if isDir {
			if !IsIgnoredDir(name) {
				subdirs = append(subdirs, name)
			}
			continue
		}
		files = append(files, name)
	}

	sort.Strings(files)
	for _, name := range files {
		relPath := path.Join(rel, name)
		if ds.excluded[relPath] || !domain.IsSupported(name) {
			continue
		}
		result.Entries = append(result.Entries, domain.Entry{Path: relPath})
		result.Files++
	}

	for _, name := range subdirs {
		if err := ds.walk(ctx, root, path.Join(rel, name), result); err != nil {
			return err
		}
	}

	return nil
}

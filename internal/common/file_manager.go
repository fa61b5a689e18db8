package common

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
)

// FileInfo contains metadata about a file
type FileInfo struct {
	Path  string // Full file path
	Name  string // File name only
	Size  int64  // File size in bytes
	IsDir bool   // Whether it's a directory
}

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapErrorf(ErrNotFound, "file %s", path)
		}
		return nil, WrapError(err, "failed to stat file: "+path)
	}
	return &FileInfo{
		Path:  path,
		Name:  info.Name(),
		Size:  info.Size(),
		IsDir: info.IsDir(),
	}, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := fm.GetFileInfo(path)
		if err != nil {
			return WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// RemoveIfExists deletes path when it is present. It reports whether a file was removed.
func (fm *FileManager) RemoveIfExists(path string) (bool, error) {
	if !fm.FileExists(path) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, WrapError(err, "failed to remove file: "+path)
	}
	fm.logger.Debug().Str("path", path).Msg("Removed file")
	return true, nil
}

// FreeSpace returns the bytes available to unprivileged users on the filesystem holding dir.
func (fm *FileManager) FreeSpace(dir string) (uint64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, WrapError(err, "failed to read disk usage for: "+dir)
	}
	return usage.Free, nil
}

// EnsureFreeSpace fails with ErrInsufficientSpace when dir cannot hold size more bytes.
// A non-positive size or an unreadable filesystem is not treated as a failure.
func (fm *FileManager) EnsureFreeSpace(dir string, size int64) error {
	if size <= 0 {
		return nil
	}
	free, err := fm.FreeSpace(dir)
	if err != nil {
		fm.logger.Warn().Err(err).Str("dir", dir).Msg("Could not determine free space, continuing")
		return nil
	}
	if uint64(size) > free {
		return WrapErrorf(ErrInsufficientSpace, "need %d bytes in %s, %d available", size, dir, free)
	}
	return nil
}

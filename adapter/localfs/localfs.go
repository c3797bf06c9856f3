// Package localfs has suppliers using the local filesystem.
package localfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/filesystem"
)

// FileSystem provides local file system access through the filesystem.FileSystem interface,
// and opens byte streams over its files.
type FileSystem struct {
	// RootPath is an optional parameter to jail the file system access for file access.
	RootPath string
	// Logger is optional, when set, stream lifecycle events are logged on debug level.
	Logger *logging.Logger
}

var _ filesystem.FileSystem = FileSystem{}

func (fs FileSystem) path(name, op string) (string, error) {
	if fs.RootPath == "" {
		return name, nil
	}

	root, err := filepath.Abs(fs.RootPath)
	if err != nil {
		return "", err
	}

	path, err := filepath.Abs(filepath.Join(root, name))
	if err != nil {
		return "", err
	}

	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", &os.PathError{
			Op:   op,
			Path: name,
			Err:  syscall.EACCES,
		}
	}

	return path, nil
}

func (fs FileSystem) OpenFile(name string, flag int, perm fs.FileMode) (filesystem.File, error) {
	path, err := fs.path(name, "open")
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path, flag, perm)
}

func (fs FileSystem) Mkdir(name string, perm fs.FileMode) error {
	path, err := fs.path(name, "mkdir")
	if err != nil {
		return err
	}
	return os.Mkdir(path, perm)
}

func (fs FileSystem) Remove(name string) error {
	path, err := fs.path(name, "remove")
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (fs FileSystem) Stat(name string) (fs.FileInfo, error) {
	path, err := fs.path(name, "stat")
	if err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (fs FileSystem) debug(ctx context.Context, msg string, ds ...logging.Detail) {
	if fs.Logger == nil {
		return
	}
	fs.Logger.Debug(ctx, msg, ds...)
}

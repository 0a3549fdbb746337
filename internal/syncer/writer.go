package syncer

import (
	"context"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to a target's path to name its backup.
const BackupSuffix = ".bak"

// Writer replaces the content of an existing target file.
type Writer interface {
	Write(ctx context.Context, path string, content []byte) error
}

// BackupWriter writes the new content to <path>.new, renames the current
// file to <path>.bak (replacing any older backup), then renames <path>.new
// into place. Only one generation of backup is kept.
type BackupWriter struct{}

var _ Writer = BackupWriter{}

func (BackupWriter) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return &IOFailure{Op: "stat", Path: path, Err: err}
	}

	tmp := path + ".new"
	if err := writeSynced(tmp, content, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmp)
		return &IOFailure{Op: "write", Path: tmp, Err: err}
	}

	if err := os.Rename(path, path+BackupSuffix); err != nil {
		_ = os.Remove(tmp)
		return &IOFailure{Op: "backup", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &IOFailure{Op: "replace", Path: path, Err: err}
	}
	return nil
}

// AtomicWriter replaces the target with a single rename of a temporary file
// created next to it. No backup is kept.
type AtomicWriter struct{}

var _ Writer = AtomicWriter{}

func (AtomicWriter) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return &IOFailure{Op: "stat", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".regionsync-*")
	if err != nil {
		return &IOFailure{Op: "write", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOFailure{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOFailure{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &IOFailure{Op: "write", Path: tmpPath, Err: err}
	}
	_ = os.Chmod(tmpPath, info.Mode().Perm())

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &IOFailure{Op: "replace", Path: path, Err: err}
	}
	_ = syncDir(dir)
	return nil
}

// writeSynced writes content to path and fsyncs it before closing.
func writeSynced(path string, content []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// syncDir fsyncs a directory so a rename inside it is persisted. Best effort.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is a read-only view of a directory tree. Stat follows symbolic
// links and Lstat reports them.
type FS interface {
	fs.ReadDirFS
	fs.StatFS
	Lstat(name string) (fs.FileInfo, error)
}

type dirFS string

// DirFS returns a read-only FS rooted at dir on the real disk. Nothing
// is ever written to dir, so it is safe on read-only mounts.
func DirFS(dir string) FS {
	return dirFS(dir)
}

func (d dirFS) join(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return filepath.Join(string(d), filepath.FromSlash(name)), nil
}

func (d dirFS) Open(name string) (fs.File, error) {
	p, err := d.join("open", name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (d dirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := d.join("readdir", name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(p)
}

func (d dirFS) Stat(name string) (fs.FileInfo, error) {
	p, err := d.join("stat", name)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func (d dirFS) Lstat(name string) (fs.FileInfo, error) {
	p, err := d.join("lstat", name)
	if err != nil {
		return nil, err
	}
	return os.Lstat(p)
}

// IsSymbolicLink reports whether path is itself a symbolic link,
// without following it.
func IsSymbolicLink(rootfs FS, path string) (bool, error) {
	info, err := rootfs.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}

// IsDir reports whether path resolves to a directory, following
// symbolic links.
func IsDir(rootfs FS, path string) bool {
	info, err := rootfs.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path resolves to a regular file, following
// symbolic links.
func IsFile(rootfs FS, path string) bool {
	info, err := rootfs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

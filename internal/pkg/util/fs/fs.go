// Copyright (c) 2018-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package fs

import (
	"os"
	"path/filepath"

	continuityfs "github.com/containerd/continuity/fs"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"
)

// IsFile checks if name is a regular file. Symlinks are followed.
func IsFile(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir checks if name is a directory.
func IsDir(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().IsDir()
}

// JoinPath joins base and suffix. A suffix starting with a slash is still
// taken relative to base, e.g. JoinPath("/tmp/session", "/passwd") returns
// "/tmp/session/passwd".
func JoinPath(base, suffix string) string {
	return filepath.Join(base, suffix)
}

// SecureJoin joins path relative to root, resolving symlinks as if root was
// the filesystem root, so the result can not point outside of root.
func SecureJoin(root, path string) (string, error) {
	p, err := securejoin.SecureJoin(root, path)
	if err != nil {
		return "", errors.Wrapf(err, "while resolving %s in %s", path, root)
	}
	return p, nil
}

// CopyFile copies the content of src into dst byte for byte. dst is created
// or truncated, src is only opened for reading.
func CopyFile(src, dst string) error {
	if !IsFile(src) {
		return errors.Errorf("%s is not a regular file", src)
	}
	if err := continuityfs.CopyFile(dst, src); err != nil {
		return errors.Wrapf(err, "could not copy %s to %s", src, dst)
	}
	return nil
}

// OpenAppend opens an existing file for appending. The file is never created.
func OpenAppend(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
}

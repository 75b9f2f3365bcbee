// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package sessiondir resolves the private scratch directory of a container
// session. Removing the directory is left to the caller owning the session.
package sessiondir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/fs"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
)

// Dir resolves a session directory. When Path is set it is used as-is and
// must already exist, otherwise a new directory is created under Prefix on
// first use.
type Dir struct {
	Path   string
	Prefix string
	Mode   os.FileMode

	resolved string
}

// Get returns the absolute path of the session directory, creating it if
// needed. Subsequent calls return the same directory.
func (d *Dir) Get() (string, error) {
	if d.resolved != "" {
		return d.resolved, nil
	}

	if d.Path != "" {
		path, err := filepath.Abs(d.Path)
		if err != nil {
			return "", fmt.Errorf("while resolving session directory %s: %w", d.Path, err)
		}
		if !fs.IsDir(path) {
			return "", fmt.Errorf("session directory %s doesn't exist", path)
		}
		d.resolved = path
		return path, nil
	}

	if d.Prefix == "" {
		return "", fmt.Errorf("no session directory and no session directory prefix configured")
	}
	if !fs.IsDir(d.Prefix) {
		return "", fmt.Errorf("session directory prefix %s doesn't exist", d.Prefix)
	}

	mode := d.Mode
	if mode == 0 {
		mode = 0o700
	}
	path := filepath.Join(d.Prefix, "session-"+uuid.NewString())
	sylog.Debugf("Creating session directory %s", path)
	if err := os.Mkdir(path, mode); err != nil {
		return "", fmt.Errorf("while creating session directory: %w", err)
	}
	// enforce mode regardless of umask
	if err := os.Chmod(path, mode); err != nil {
		return "", fmt.Errorf("while setting session directory permissions: %w", err)
	}

	d.resolved = path
	return path, nil
}

// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sessiondir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestGetExisting(t *testing.T) {
	dir := t.TempDir()

	d := &Dir{Path: dir}
	got, err := d.Get()
	assert.NilError(t, err)
	assert.Equal(t, got, dir)

	d = &Dir{Path: filepath.Join(dir, "missing")}
	_, err = d.Get()
	assert.ErrorContains(t, err, "doesn't exist")
}

func TestGetCreate(t *testing.T) {
	prefix := t.TempDir()

	d := &Dir{Prefix: prefix, Mode: 0o750}
	first, err := d.Get()
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(filepath.Base(first), "session-"))
	assert.Equal(t, filepath.Dir(first), prefix)

	fi, err := os.Stat(first)
	assert.NilError(t, err)
	assert.Assert(t, fi.IsDir())
	assert.Equal(t, fi.Mode().Perm(), os.FileMode(0o750))

	second, err := d.Get()
	assert.NilError(t, err)
	assert.Equal(t, second, first)

	other, err := (&Dir{Prefix: prefix}).Get()
	assert.NilError(t, err)
	assert.Assert(t, other != first)
}

func TestGetUnresolved(t *testing.T) {
	_, err := (&Dir{}).Get()
	assert.ErrorContains(t, err, "no session directory")

	_, err = (&Dir{Prefix: filepath.Join(t.TempDir(), "missing")}).Get()
	assert.ErrorContains(t, err, "prefix")
}

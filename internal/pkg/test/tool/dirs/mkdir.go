// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package dirs

import (
	"os"
	"testing"
)

func MkdirOrFatal(t *testing.T, dir string, perm os.FileMode) {
	t.Helper()
	if err := os.Mkdir(dir, perm); err != nil {
		t.Fatalf("could not create %q: %s", dir, err)
	}
	if err := os.Chmod(dir, perm); err != nil {
		t.Fatalf("could not chmod %q to %o: %s", dir, perm, err)
	}
}

// WriteFileOrFatal writes content to path and forces perm on it.
func WriteFileOrFatal(t *testing.T, path string, content []byte, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, content, perm); err != nil {
		t.Fatalf("could not write %q: %s", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("could not chmod %q to %o: %s", path, perm, err)
	}
}

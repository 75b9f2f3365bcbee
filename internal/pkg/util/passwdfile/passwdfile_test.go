// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package passwdfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

const testPasswd = `root:x:0:0:root:/root:/bin/sh

# services
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
broken line without fields
alice:x:1000:1000:Alice User:/home/alice:/bin/bash
`

func TestFindUID(t *testing.T) {
	tests := []struct {
		name     string
		uid      int
		wantName string
		wantLine int
	}{
		{name: "Root", uid: 0, wantName: "root", wantLine: 1},
		{name: "AfterComment", uid: 1, wantName: "daemon", wantLine: 4},
		{name: "AfterBrokenLine", uid: 1000, wantName: "alice", wantLine: 6},
		{name: "Missing", uid: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := findUID(strings.NewReader(testPasswd), tt.uid)
			assert.NilError(t, err)
			if tt.wantName == "" {
				assert.Assert(t, e == nil)
				return
			}
			assert.Assert(t, e != nil)
			assert.Equal(t, e.Username, tt.wantName)
			assert.Equal(t, e.UID, tt.uid)
			assert.Equal(t, e.Line, tt.wantLine)
		})
	}
}

func TestLookupUIDInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwd")
	if err := os.WriteFile(path, []byte(testPasswd), 0o444); err != nil {
		t.Fatal(err)
	}

	e, err := LookupUIDInFile(path, 1000)
	assert.NilError(t, err)
	assert.Equal(t, e.Username, "alice")
	assert.Equal(t, e.GID, 1000)

	_, err = LookupUIDInFile(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Assert(t, os.IsNotExist(err))
}

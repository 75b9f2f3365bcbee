// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package passwdfile provides read-only lookups against an arbitrary passwd
// file, such as the one shipped in a container image.
package passwdfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	pwd "github.com/astromechza/etcpwdparse"
)

// Entry is a parsed passwd line together with its position in the file.
type Entry struct {
	Line     int
	Username string
	UID      int
	GID      int
}

// readEntries runs fn for each valid passwd line of r. Blank lines, comments
// and lines that can not be parsed are skipped, the same way libc skips them.
// Iteration stops as soon as fn returns true.
func readEntries(r io.Reader, fn func(Entry) bool) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		e, err := pwd.ParsePasswdLine(line)
		if err != nil {
			continue
		}
		if fn(Entry{Line: n, Username: e.Username(), UID: e.Uid(), GID: e.Gid()}) {
			return nil
		}
	}
	return sc.Err()
}

func findUID(r io.Reader, uid int) (*Entry, error) {
	var found *Entry
	err := readEntries(r, func(e Entry) bool {
		if e.UID == uid {
			found = &e
			return true
		}
		return false
	})
	return found, err
}

// LookupUIDInFile returns the first entry of passwdFile matching uid, or nil
// when there is none. The file is only opened for reading.
func LookupUIDInFile(passwdFile string, uid int) (*Entry, error) {
	f, err := os.Open(passwdFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := findUID(f, uid)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", passwdFile, err)
	}
	return e, nil
}

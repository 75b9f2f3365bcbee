// Copyright (c) 2018-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package user

import (
	"fmt"
	"strings"

	"github.com/moby/sys/user"
)

// DefaultPasswdFile is the host passwd database identities are resolved from.
const DefaultPasswdFile = "/etc/passwd"

// User represents a passwd entry.
type User struct {
	Name  string
	UID   uint32
	GID   uint32
	Gecos string
	Dir   string
	Shell string
}

// PasswdLine formats u as a passwd line without a trailing newline. The
// password field is always "x" and field values are not escaped.
func (u *User) PasswdLine() string {
	return fmt.Sprintf("%s:x:%d:%d:%s:%s:%s", u.Name, u.UID, u.GID, u.Gecos, u.Dir, u.Shell)
}

// UnknownUIDError is returned when no passwd entry matches a uid.
type UnknownUIDError uint32

func (e UnknownUIDError) Error() string {
	return fmt.Sprintf("no passwd entry for uid %d", uint32(e))
}

// Resolver looks up users in a passwd file.
type Resolver struct {
	// PasswdFile defaults to DefaultPasswdFile when empty.
	PasswdFile string
}

func (r *Resolver) file() string {
	if r == nil || r.PasswdFile == "" {
		return DefaultPasswdFile
	}
	return r.PasswdFile
}

func (r *Resolver) lookup(filter func(user.User) bool) (*User, error) {
	users, err := user.ParsePasswdFileFilter(r.file(), func(e user.User) bool {
		// comment lines are not skipped by the parser
		if e.Name == "" || strings.HasPrefix(e.Name, "#") {
			return false
		}
		return filter(e)
	})
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", r.file(), err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return convert(users[0]), nil
}

// GetPwUID returns a pointer to User structure associated with user uid.
func (r *Resolver) GetPwUID(uid uint32) (*User, error) {
	u, err := r.lookup(func(e user.User) bool {
		return e.Uid == int(uid)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, UnknownUIDError(uid)
	}
	return u, nil
}

func convert(u user.User) *User {
	return &User{
		Name:  u.Name,
		UID:   uint32(u.Uid),
		GID:   uint32(u.Gid),
		Gecos: u.Gecos,
		Dir:   u.Home,
		Shell: u.Shell,
	}
}

// Copyright (c) 2018-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package priv

import (
	"github.com/sylabs/passwd-overlay/internal/pkg/util/rootless"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
	"github.com/sylabs/passwd-overlay/pkg/util/namespaces"
	"golang.org/x/sys/unix"
)

// Context reports the identity of the user who invoked the runtime.
type Context struct{}

// Getuid returns the uid of the invoking user. A uid handed down by a
// rootless parent takes precedence, otherwise the real uid of the process is
// returned so that a setuid invocation still reports the calling user.
func (Context) Getuid() (int, error) {
	if rootless.IsSet() {
		uid, err := rootless.Getuid()
		if err != nil {
			return -1, err
		}
		sylog.Debugf("Using rootless uid %d", uid)
		return uid, nil
	}

	r, e, s := unix.Getresuid()
	sylog.Debugf("Current r/e/s: %d/%d/%d", r, e, s)
	logHostUID(namespaces.SelfUIDMap, r)
	return r, nil
}

// logHostUID reports the host identity behind uid when running in a user
// namespace. The passwd entry is still resolved for the namespace uid.
func logHostUID(uidMap string, uid int) {
	if !namespaces.IsInsideUserNamespace(uidMap) {
		return
	}
	hostUID, err := namespaces.HostUID(uidMap, uid)
	if err != nil {
		sylog.Debugf("Could not map uid %d to the host: %s", uid, err)
		return
	}
	sylog.Debugf("Running inside a user namespace, uid %d is host uid %d", uid, hostUID)
}

// Getuid is a shorthand for Context{}.Getuid.
func Getuid() (int, error) {
	return Context{}.Getuid()
}

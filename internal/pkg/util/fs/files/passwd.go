// Copyright (c) 2018-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package files

import (
	"errors"
	"fmt"
	"io"

	"github.com/ccoveille/go-safecast"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/fs"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/passwdfile"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/user"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
)

const (
	// PasswdSessionFile is the name of the generated file in the session
	// directory.
	PasswdSessionFile = "passwd"
	// PasswdContainerPath is where the session file is bound in the container.
	PasswdContainerPath = "/etc/passwd"
)

// UIDSource reports the uid of the user running the container.
type UIDSource interface {
	Getuid() (int, error)
}

// IdentityResolver returns the passwd entry of a uid.
type IdentityResolver interface {
	GetPwUID(uid uint32) (*user.User, error)
}

// BindRequester records a session file to bind in the container later in the
// startup sequence.
type BindRequester interface {
	RequestBind(name, destination string)
}

type fileOps interface {
	IsFile(path string) bool
	SecureJoin(root, path string) (string, error)
	CopyFile(src, dst string) error
	OpenAppend(path string) (io.WriteCloser, error)
	Remove(path string) error
}

type hostFileOps struct{}

func (hostFileOps) IsFile(path string) bool { return fs.IsFile(path) }

func (hostFileOps) SecureJoin(root, path string) (string, error) { return fs.SecureJoin(root, path) }

func (hostFileOps) CopyFile(src, dst string) error { return fs.CopyFile(src, dst) }

func (hostFileOps) OpenAppend(path string) (io.WriteCloser, error) { return fs.OpenAppend(path) }

func (hostFileOps) Remove(path string) error { return removeFile(path) }

// PasswdOverlay generates a session copy of the container /etc/passwd with an
// entry for the calling user appended, and requests it to be bound over
// /etc/passwd in the container. The container file is never modified.
type PasswdOverlay struct {
	UIDSource  UIDSource
	Identities IdentityResolver
	Rootfs     func() (string, error)
	SessionDir func() (string, error)
	Binder     BindRequester

	// Home replaces the home directory of the calling user in the appended
	// entry when not empty.
	Home string

	ops fileOps
}

func (p *PasswdOverlay) fileOps() fileOps {
	if p.ops == nil {
		return hostFileOps{}
	}
	return p.ops
}

// Ensure creates the session passwd file. It returns nil without doing
// anything when running as root or when the container has no /etc/passwd.
// Any other failure is returned as a *FatalError and must abort the
// container startup.
func (p *PasswdOverlay) Ensure() (err error) {
	sylog.Debugf("Called PasswdOverlay.Ensure()")

	ops := p.fileOps()

	uid, err := p.UIDSource.Getuid()
	if err != nil {
		return configError("failed to obtain current user id", err)
	}
	if uid == 0 {
		sylog.Verbosef("Not updating passwd file, running as root!")
		return nil
	}

	containerDir, err := p.Rootfs()
	if err != nil {
		return configError("failed to obtain container directory", err)
	}
	sessionDir, err := p.SessionDir()
	if err != nil {
		return configError("failed to obtain session directory", err)
	}

	sourceFile, err := ops.SecureJoin(containerDir, PasswdContainerPath)
	if err != nil {
		return configError("failed to resolve container passwd file", err)
	}
	sessionFile := fs.JoinPath(sessionDir, PasswdSessionFile)

	sylog.Verbosef("Checking for template passwd file: %s", sourceFile)
	if !ops.IsFile(sourceFile) {
		sylog.Verbosef("Passwd file does not exist in container, not updating")
		return nil
	}

	// a failed copy may leave a truncated file behind
	defer func() {
		if err == nil {
			return
		}
		if rerr := ops.Remove(sessionFile); rerr != nil {
			sylog.Debugf("Could not remove %s: %s", sessionFile, rerr)
		}
	}()

	sylog.Verbosef("Creating template of /etc/passwd")
	if err := ops.CopyFile(sourceFile, sessionFile); err != nil {
		return ioError("failed copying template passwd file to sessiondir", err)
	}

	puid, err := safecast.ToUint32(uid)
	if err != nil {
		return configError(fmt.Sprintf("invalid user id %d", uid), err)
	}
	pwInfo, err := p.Identities.GetPwUID(puid)
	if err != nil {
		return configError(fmt.Sprintf("failed to resolve passwd entry for uid %d", uid), err)
	} else if pwInfo == nil {
		return configError(fmt.Sprintf("failed to resolve passwd entry for uid %d", uid), user.UnknownUIDError(puid))
	}
	entry := *pwInfo
	if p.Home != "" {
		entry.Dir = p.Home
	}

	if e, lerr := passwdfile.LookupUIDInFile(sessionFile, uid); lerr != nil {
		sylog.Debugf("Could not look for uid %d in %s: %s", uid, sessionFile, lerr)
	} else if e != nil {
		sylog.Warningf("Container passwd file already has an entry for uid %d (%s, line %d), appending %s anyway", uid, e.Username, e.Line, entry.Name)
	}

	sylog.Debugf("Opening the template passwd file: %s", sessionFile)
	f, err := ops.OpenAppend(sessionFile)
	if err != nil {
		return ioError(fmt.Sprintf("could not open template passwd file %s", sessionFile), err)
	}

	sylog.Verbosef("Creating template passwd file and appending user data")
	if err := appendEntry(f, &entry); err != nil {
		return ioError(fmt.Sprintf("could not write template passwd file %s", sessionFile), err)
	}

	p.Binder.RequestBind(PasswdSessionFile, PasswdContainerPath)
	return nil
}

// appendEntry writes the passwd line of u preceded by a newline, then closes
// w. w is closed even if the write fails.
func appendEntry(w io.WriteCloser, u *user.User) error {
	_, werr := fmt.Fprintf(w, "\n%s\n", u.PasswdLine())
	cerr := w.Close()
	return errors.Join(werr, cerr)
}

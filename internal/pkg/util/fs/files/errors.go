// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package files

import (
	"os"

	"github.com/sylabs/passwd-overlay/pkg/sylog"
)

// ExitStatus is the exit status of a process aborted because session files
// could not be prepared.
const ExitStatus = sylog.FatalExitStatus

// ErrorKind classifies a FatalError.
type ErrorKind int

const (
	// ConfigError means the environment is inconsistent, e.g. the container
	// or session directory can't be resolved.
	ConfigError ErrorKind = iota
	// IOError means a filesystem operation failed.
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigError:
		return "configuration error"
	case IOError:
		return "I/O error"
	}
	return "unknown error"
}

// FatalError is returned when session files can't be prepared. The container
// must not be started after a FatalError.
type FatalError struct {
	Kind ErrorKind
	Step string
	Err  error
}

func (e *FatalError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func configError(step string, err error) error {
	return &FatalError{Kind: ConfigError, Step: step, Err: err}
}

func ioError(step string, err error) error {
	return &FatalError{Kind: IOError, Step: step, Err: err}
}

func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

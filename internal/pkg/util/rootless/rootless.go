// Copyright (c) 2023-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package rootless

import (
	"os"
	"strconv"
)

// UIDEnv holds the uid of the user who started a rootless parent.
const UIDEnv = "_CONTAINERS_ROOTLESS_UID"

// Getuid retrieves the uid stored in the env var _CONTAINERS_ROOTLESS_UID, or
// the current euid if the env var is not set.
func Getuid() (uid int, err error) {
	u := os.Getenv(UIDEnv)
	if u != "" {
		return strconv.Atoi(u)
	}
	return os.Geteuid(), nil
}

// IsSet returns true when a rootless uid was handed down through
// _CONTAINERS_ROOTLESS_UID.
func IsSet() bool {
	return os.Getenv(UIDEnv) != ""
}

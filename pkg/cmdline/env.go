// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

import (
	"fmt"

	"github.com/spf13/pflag"
)

// EnvHandler defines an environment handler to set the value of a flag from
// an environment variable.
type EnvHandler func(*pflag.Flag, string) error

// EnvSetValue sets the flag value from the environment. Empty values are
// ignored.
func EnvSetValue(flag *pflag.Flag, value string) error {
	if value == "" {
		return nil
	}
	if err := flag.Value.Set(value); err != nil {
		return fmt.Errorf("invalid value %q for environment variable of flag --%s: %w", value, flag.Name, err)
	}
	return nil
}

// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"github.com/spf13/cobra"
	"github.com/sylabs/passwd-overlay/docs"
	"github.com/sylabs/passwd-overlay/pkg/cmdline"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
	"github.com/sylabs/passwd-overlay/pkg/util/singularityconf"
)

func init() {
	addCmdInit(func(cmdManager *cmdline.CommandManager) {
		cmdManager.RegisterCmd(ConfigCmd)
	})
}

// ConfigCmd passwd-overlay config
var ConfigCmd = &cobra.Command{
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := singularityconf.Generate(cmd.OutOrStdout(), singularityconf.GetCurrentConfig()); err != nil {
			sylog.Fatalf("%s", err)
		}
	},

	Use:     docs.ConfigUse,
	Short:   docs.ConfigShort,
	Long:    docs.ConfigLong,
	Example: docs.ConfigExample,
}

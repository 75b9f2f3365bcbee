// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/sylabs/passwd-overlay/docs"
	"github.com/sylabs/passwd-overlay/internal/app/starter"
	"github.com/sylabs/passwd-overlay/pkg/cmdline"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
)

const (
	formatYAML = "yaml"
	formatBind = "bind"
)

var (
	prepareRootfs     string
	prepareSessionDir string
	prepareHome       string
	prepareBindPlan   string
	prepareFormat     string
)

// --rootfs
var prepareRootfsFlag = cmdline.Flag{
	ID:           "prepareRootfsFlag",
	Value:        &prepareRootfs,
	DefaultValue: "",
	Name:         "rootfs",
	Usage:        "container root filesystem to read /etc/passwd from",
	Tag:          "<path>",
	EnvKeys:      []string{"ROOTFS"},
}

// --sessiondir
var prepareSessionDirFlag = cmdline.Flag{
	ID:           "prepareSessionDirFlag",
	Value:        &prepareSessionDir,
	DefaultValue: "",
	Name:         "sessiondir",
	Usage:        "existing session directory (a new one is created under 'sessiondir prefix' by default)",
	Tag:          "<path>",
	EnvKeys:      []string{"SESSIONDIR"},
}

// --home
var prepareHomeFlag = cmdline.Flag{
	ID:           "prepareHomeFlag",
	Value:        &prepareHome,
	DefaultValue: "",
	Name:         "home",
	Usage:        "home directory written in the passwd entry instead of the host one",
	Tag:          "<path>",
	EnvKeys:      []string{"HOME"},
}

// --bind-plan
var prepareBindPlanFlag = cmdline.Flag{
	ID:           "prepareBindPlanFlag",
	Value:        &prepareBindPlan,
	DefaultValue: "",
	Name:         "bind-plan",
	Usage:        "write the required binds to this file instead of standard output",
	Tag:          "<file>",
}

// --format
var prepareFormatFlag = cmdline.Flag{
	ID:           "prepareFormatFlag",
	Value:        &prepareFormat,
	DefaultValue: formatYAML,
	Name:         "format",
	Usage:        "bind plan format (yaml, bind)",
	Tag:          "<format>",
}

func init() {
	addCmdInit(func(cmdManager *cmdline.CommandManager) {
		cmdManager.RegisterCmd(PrepareCmd)

		cmdManager.RegisterFlagForCmd(&prepareRootfsFlag, PrepareCmd)
		cmdManager.RegisterFlagForCmd(&prepareSessionDirFlag, PrepareCmd)
		cmdManager.RegisterFlagForCmd(&prepareHomeFlag, PrepareCmd)
		cmdManager.RegisterFlagForCmd(&prepareBindPlanFlag, PrepareCmd)
		cmdManager.RegisterFlagForCmd(&prepareFormatFlag, PrepareCmd)
	})
}

// PrepareCmd passwd-overlay prepare --rootfs <path> [...]
var PrepareCmd = &cobra.Command{
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := checkFormat(prepareFormat); err != nil {
			sylog.Fatalf("%s", err)
		}

		plan := starter.SessionFiles(starter.SessionOptions{
			Rootfs:     prepareRootfs,
			SessionDir: prepareSessionDir,
			Home:       prepareHome,
		})

		if prepareBindPlan == "" {
			if err := writePlan(cmd.OutOrStdout(), plan, prepareFormat); err != nil {
				sylog.Fatalf("%s", err)
			}
			return
		}

		var buf bytes.Buffer
		if err := writePlan(&buf, plan, prepareFormat); err != nil {
			sylog.Fatalf("%s", err)
		}
		if err := os.WriteFile(prepareBindPlan, buf.Bytes(), 0o644); err != nil {
			sylog.Fatalf("Could not write bind plan: %s", err)
		}
		sylog.Verbosef("Bind plan written to %s", prepareBindPlan)
	},

	Use:     docs.PrepareUse,
	Short:   docs.PrepareShort,
	Long:    docs.PrepareLong,
	Example: docs.PrepareExample,
}

func checkFormat(format string) error {
	switch format {
	case formatYAML, formatBind:
		return nil
	}
	return fmt.Errorf("unknown bind plan format %q, must be %s or %s", format, formatYAML, formatBind)
}

func writePlan(w io.Writer, plan *starter.Plan, format string) error {
	switch format {
	case formatYAML:
		return plan.WriteYAML(w)
	case formatBind:
		spec := plan.BindSpec()
		if spec == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, spec)
		return err
	}
	return checkFormat(format)
}

// Copyright (c) 2018-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/sylabs/passwd-overlay/docs"
	"github.com/sylabs/passwd-overlay/pkg/cmdline"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
	"github.com/sylabs/passwd-overlay/pkg/util/singularityconf"
)

// envPrefix is prepended to the EnvKeys of every flag.
const envPrefix = "SINGULARITY_"

// cmdInits holds all the init function to be called
// for commands/flags registration.
var cmdInits = make([]func(*cmdline.CommandManager), 0)

// Global flag values.
var (
	debug      bool
	nocolor    bool
	silent     bool
	verbose    bool
	quiet      bool
	configFile string
)

// -d|--debug
var singDebugFlag = cmdline.Flag{
	ID:           "singDebugFlag",
	Value:        &debug,
	DefaultValue: false,
	Name:         "debug",
	ShortHand:    "d",
	Usage:        "print debugging information (highest verbosity)",
	EnvKeys:      []string{"DEBUG"},
}

// --nocolor
var singNoColorFlag = cmdline.Flag{
	ID:           "singNoColorFlag",
	Value:        &nocolor,
	DefaultValue: false,
	Name:         "nocolor",
	Usage:        "print without color output (default False)",
	EnvKeys:      []string{"NOCOLOR"},
}

// -s|--silent
var singSilentFlag = cmdline.Flag{
	ID:           "singSilentFlag",
	Value:        &silent,
	DefaultValue: false,
	Name:         "silent",
	ShortHand:    "s",
	Usage:        "only print errors",
}

// -q|--quiet
var singQuietFlag = cmdline.Flag{
	ID:           "singQuietFlag",
	Value:        &quiet,
	DefaultValue: false,
	Name:         "quiet",
	ShortHand:    "q",
	Usage:        "suppress normal output",
}

// -v|--verbose
var singVerboseFlag = cmdline.Flag{
	ID:           "singVerboseFlag",
	Value:        &verbose,
	DefaultValue: false,
	Name:         "verbose",
	ShortHand:    "v",
	Usage:        "print additional information",
}

// -c|--config
var singConfigFileFlag = cmdline.Flag{
	ID:           "singConfigFileFlag",
	Value:        &configFile,
	DefaultValue: "",
	Name:         "config",
	ShortHand:    "c",
	Usage:        "specify a configuration file (defaults are used when unset)",
	EnvKeys:      []string{"CONFIG_FILE"},
}

func addCmdInit(cmdInit func(*cmdline.CommandManager)) {
	cmdInits = append(cmdInits, cmdInit)
}

func setSylogMessageLevel() {
	var level int

	switch {
	case debug:
		level = 4
	case verbose:
		level = 1
	case quiet:
		level = -2
	case silent:
		level = -3
	default:
		// SINGULARITY_MESSAGELEVEL, read by sylog at startup
		level = sylog.GetLevel()
	}

	color := !nocolor
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}

	sylog.SetLevel(level, color)
}

// loadConfig reads the configuration file, or the defaults when none is
// given, and makes it the current configuration.
func loadConfig() error {
	if configFile != "" {
		sylog.Debugf("Parsing configuration file %s", configFile)
	}
	config, err := singularityconf.GetConfig(configFile)
	if err != nil {
		return err
	}
	singularityconf.SetCurrentConfig(config)
	return nil
}

func persistentPreRunE(cmdManager *cmdline.CommandManager) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		root := cmdManager.GetRootCmd()
		if err := cmdManager.UpdateCmdFlagFromEnv(root, envPrefix); err != nil {
			return err
		}
		setSylogMessageLevel()

		if cmd != root {
			if err := cmdManager.UpdateCmdFlagFromEnv(cmd, envPrefix); err != nil {
				return err
			}
		}
		return loadConfig()
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Help()
			return errors.New("no command given")
		},
		TraverseChildren:      true,
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,

		Use:     docs.PasswdOverlayUse,
		Short:   docs.PasswdOverlayShort,
		Long:    docs.PasswdOverlayLong,
		Example: docs.PasswdOverlayExample,
	}
}

// Init initializes and registers all the passwd-overlay commands.
func Init() (*cmdline.CommandManager, error) {
	cmdManager := cmdline.NewCommandManager(newRootCmd())

	root := cmdManager.GetRootCmd()
	cmdManager.RegisterFlagForCmd(&singDebugFlag, root)
	cmdManager.RegisterFlagForCmd(&singNoColorFlag, root)
	cmdManager.RegisterFlagForCmd(&singSilentFlag, root)
	cmdManager.RegisterFlagForCmd(&singQuietFlag, root)
	cmdManager.RegisterFlagForCmd(&singVerboseFlag, root)
	cmdManager.RegisterFlagForCmd(&singConfigFileFlag, root)

	for _, cmdInit := range cmdInits {
		cmdInit(cmdManager)
	}
	root.PersistentPreRunE = persistentPreRunE(cmdManager)

	return cmdManager, cmdManager.GetError()
}

// ExecutePasswdOverlay adds all child commands to the root command and sets
// flags appropriately. This is called by main.main(). It only needs to happen
// once to the root command.
func ExecutePasswdOverlay() {
	cmdManager, err := Init()
	if err != nil {
		sylog.Fatalf("While initializing commands: %s", err)
	}

	if err := cmdManager.GetRootCmd().Execute(); err != nil {
		sylog.Errorf("%s", err)
		os.Exit(1)
	}
}

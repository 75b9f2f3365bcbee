// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// CommandManager holds root command and flags of a command line.
type CommandManager struct {
	rootCmd *cobra.Command
	fm      *flagManager
	errPool []error
}

// NewCommandManager instantiates a CommandManager.
func NewCommandManager(rootCmd *cobra.Command) *CommandManager {
	if rootCmd == nil {
		panic("nil root command passed")
	}
	return &CommandManager{
		rootCmd: rootCmd,
		fm:      newFlagManager(),
	}
}

func (m *CommandManager) pushError(format string, a ...interface{}) {
	m.errPool = append(m.errPool, fmt.Errorf(format, a...))
}

// GetError returns the errors accumulated while registering commands and
// flags, or nil.
func (m *CommandManager) GetError() error {
	return errors.Join(m.errPool...)
}

// GetRootCmd returns the root command.
func (m *CommandManager) GetRootCmd() *cobra.Command {
	return m.rootCmd
}

// RegisterCmd registers a child command of the root command.
func (m *CommandManager) RegisterCmd(cmd *cobra.Command) {
	m.RegisterSubCmd(m.rootCmd, cmd)
}

// RegisterSubCmd registers a child command of parent.
func (m *CommandManager) RegisterSubCmd(parent, child *cobra.Command) {
	if parent == nil || child == nil {
		m.pushError("nil command provided")
		return
	}
	parent.AddCommand(child)
}

// RegisterFlagForCmd registers a flag for the given commands.
func (m *CommandManager) RegisterFlagForCmd(flag *Flag, cmds ...*cobra.Command) {
	if err := m.fm.registerFlagForCmd(flag, cmds...); err != nil {
		m.pushError("while registering flag %q: %w", flagName(flag), err)
	}
}

// UpdateCmdFlagFromEnv updates flags of cmd from environment variables
// named prefix+EnvKey.
func (m *CommandManager) UpdateCmdFlagFromEnv(cmd *cobra.Command, prefix string) error {
	return m.fm.updateCmdFlagFromEnv(cmd, prefix)
}

func flagName(flag *Flag) string {
	if flag == nil {
		return ""
	}
	return flag.Name
}

// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

import (
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
)

func newTestManager() (*CommandManager, *cobra.Command) {
	root := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	m := NewCommandManager(root)
	m.RegisterCmd(child)
	return m, child
}

func TestRegisterFlagForCmd(t *testing.T) {
	m, child := newTestManager()

	var (
		s  string
		b  bool
		i  int
		ss []string
	)

	m.RegisterFlagForCmd(&Flag{ID: "s", Value: &s, DefaultValue: "def", Name: "str", ShortHand: "S"}, child)
	m.RegisterFlagForCmd(&Flag{ID: "b", Value: &b, DefaultValue: false, Name: "bool"}, child)
	m.RegisterFlagForCmd(&Flag{ID: "i", Value: &i, DefaultValue: 3, Name: "int"}, child)
	m.RegisterFlagForCmd(&Flag{ID: "ss", Value: &ss, DefaultValue: []string{}, Name: "slice"}, child)
	assert.NilError(t, m.GetError())

	assert.Equal(t, s, "def")
	assert.Equal(t, i, 3)

	assert.NilError(t, child.ParseFlags([]string{"-S", "x", "--bool", "--int", "5", "--slice", "a,b"}))
	assert.Equal(t, s, "x")
	assert.Assert(t, b)
	assert.Equal(t, i, 5)
	assert.DeepEqual(t, ss, []string{"a", "b"})
}

func TestRegisterFlagErrors(t *testing.T) {
	m, child := newTestManager()

	var s string
	m.RegisterFlagForCmd(&Flag{ID: "wrong", Value: &s, DefaultValue: true, Name: "wrong"}, child)
	m.RegisterFlagForCmd(&Flag{ID: "u", Value: &s, DefaultValue: uint64(1), Name: "unsupported"}, child)
	m.RegisterFlagForCmd(nil, child)

	err := m.GetError()
	assert.ErrorContains(t, err, `expected value of flag "wrong" to be of type bool`)
	assert.ErrorContains(t, err, "is not supported")
	assert.ErrorContains(t, err, "nil flag provided")
}

func TestUpdateCmdFlagFromEnv(t *testing.T) {
	m, child := newTestManager()

	var (
		rootfs  string
		home    string
		verbose bool
		count   int
	)
	m.RegisterFlagForCmd(&Flag{ID: "rootfs", Value: &rootfs, DefaultValue: "", Name: "rootfs", EnvKeys: []string{"ROOTFS"}}, child)
	m.RegisterFlagForCmd(&Flag{ID: "home", Value: &home, DefaultValue: "", Name: "home", EnvKeys: []string{"HOME"}}, child)
	m.RegisterFlagForCmd(&Flag{ID: "verbose", Value: &verbose, DefaultValue: false, Name: "verbose", EnvKeys: []string{"VERBOSE"}}, child)
	m.RegisterFlagForCmd(&Flag{ID: "count", Value: &count, DefaultValue: 0, Name: "count", EnvKeys: []string{"COUNT"}}, child)
	assert.NilError(t, m.GetError())

	t.Setenv("TEST_ROOTFS", "/from/env")
	t.Setenv("TEST_HOME", "/env/home")
	t.Setenv("TEST_VERBOSE", "true")
	t.Setenv("TEST_COUNT", "")

	// command line wins over environment
	assert.NilError(t, child.ParseFlags([]string{"--home", "/cli/home"}))
	assert.NilError(t, m.UpdateCmdFlagFromEnv(child, "TEST_"))

	assert.Equal(t, rootfs, "/from/env")
	assert.Equal(t, home, "/cli/home")
	assert.Assert(t, verbose)
	assert.Equal(t, count, 0)

	t.Setenv("TEST_COUNT", "many")
	err := m.UpdateCmdFlagFromEnv(child, "TEST_")
	assert.ErrorContains(t, err, `invalid value "many"`)
}

func TestUpdateCmdFlagFromEnvKeyOrder(t *testing.T) {
	m, child := newTestManager()

	var dir string
	m.RegisterFlagForCmd(&Flag{
		ID:           "dir",
		Value:        &dir,
		DefaultValue: "",
		Name:         "dir",
		EnvKeys:      []string{"SESSIONDIR", "TMPDIR"},
	}, child)
	assert.NilError(t, m.GetError())

	t.Setenv("TEST_TMPDIR", "/tmp/fallback")
	assert.NilError(t, m.UpdateCmdFlagFromEnv(child, "TEST_"))
	assert.Equal(t, dir, "/tmp/fallback")

	t.Setenv("TEST_SESSIONDIR", "/tmp/session")
	assert.NilError(t, m.UpdateCmdFlagFromEnv(child, "TEST_"))
	assert.Equal(t, dir, "/tmp/session")
}

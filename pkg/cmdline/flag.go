// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Annotation keys stored on registered pflag.Flag values.
const (
	annotationID     = "ID"
	annotationArgTag = "argtag"
	annotationEnvKey = "envkey"
)

// Flag holds information about a command flag
type Flag struct {
	ID           string
	Value        interface{}
	DefaultValue interface{}
	Name         string
	ShortHand    string
	Usage        string
	Tag          string
	Deprecated   string
	Hidden       bool
	Required     bool
	EnvKeys      []string
	EnvHandler   EnvHandler
}

// FlagValTypeErr is returned when the Value of a Flag does not point to the
// type of its DefaultValue.
type FlagValTypeErr struct {
	name     string
	expected string
	found    string
}

func (e FlagValTypeErr) Error() string {
	return fmt.Sprintf("expected value of flag %q to be of type %s, but encountered %s instead", e.name, e.expected, e.found)
}

func valueTypeErr(flag *Flag, expected string) error {
	return FlagValTypeErr{name: flag.Name, expected: expected, found: fmt.Sprintf("%T", flag.Value)}
}

// flagManager keeps registered flags indexed by ID so environment handlers
// can be found from the pflag annotations.
type flagManager struct {
	flags map[string]*Flag
}

func newFlagManager() *flagManager {
	return &flagManager{flags: make(map[string]*Flag)}
}

// define adds flag to fs according to the type of its default value.
func define(fs *pflag.FlagSet, flag *Flag) error {
	switch def := flag.DefaultValue.(type) {
	case string:
		p, ok := flag.Value.(*string)
		if !ok {
			return valueTypeErr(flag, "string")
		}
		fs.StringVarP(p, flag.Name, flag.ShortHand, def, flag.Usage)
	case []string:
		p, ok := flag.Value.(*[]string)
		if !ok {
			return valueTypeErr(flag, "[]string")
		}
		fs.StringSliceVarP(p, flag.Name, flag.ShortHand, def, flag.Usage)
	case bool:
		p, ok := flag.Value.(*bool)
		if !ok {
			return valueTypeErr(flag, "bool")
		}
		fs.BoolVarP(p, flag.Name, flag.ShortHand, def, flag.Usage)
	case int:
		p, ok := flag.Value.(*int)
		if !ok {
			return valueTypeErr(flag, "int")
		}
		fs.IntVarP(p, flag.Name, flag.ShortHand, def, flag.Usage)
	default:
		return fmt.Errorf("flag %s of type %T is not supported", flag.Name, flag.DefaultValue)
	}
	return nil
}

// annotate records flag metadata on cmd and applies its visibility options.
func annotate(cmd *cobra.Command, flag *Flag) {
	fs := cmd.Flags()
	fs.SetAnnotation(flag.Name, annotationID, []string{flag.ID})
	fs.SetAnnotation(flag.Name, annotationArgTag, []string{flag.Tag})
	if len(flag.EnvKeys) > 0 {
		fs.SetAnnotation(flag.Name, annotationEnvKey, flag.EnvKeys)
	}

	if flag.Deprecated != "" {
		fs.MarkDeprecated(flag.Name, flag.Deprecated)
	}
	if flag.Hidden {
		fs.MarkHidden(flag.Name)
	}
	if flag.Required {
		cmd.MarkFlagRequired(flag.Name)
	}
}

func (m *flagManager) registerFlagForCmd(flag *Flag, cmds ...*cobra.Command) error {
	if flag == nil {
		return errors.New("nil flag provided")
	}
	for _, c := range cmds {
		if c == nil {
			return errors.New("nil command provided")
		}
	}
	if flag.EnvHandler == nil {
		flag.EnvHandler = EnvSetValue
	}

	for _, c := range cmds {
		if err := define(c.Flags(), flag); err != nil {
			return err
		}
		annotate(c, flag)
	}
	m.flags[flag.ID] = flag
	return nil
}

// lookup returns the registered Flag behind a pflag.Flag, if any.
func (m *flagManager) lookup(pf *pflag.Flag) (*Flag, bool) {
	id, ok := pf.Annotations[annotationID]
	if !ok || len(id) == 0 {
		return nil, false
	}
	flag, ok := m.flags[id[0]]
	return flag, ok
}

// updateCmdFlagFromEnv sets the flags of cmd that were not given on the
// command line from prefix+EnvKey. The first key set in the environment
// wins.
func (m *flagManager) updateCmdFlagFromEnv(cmd *cobra.Command, prefix string) error {
	var errs []error

	cmd.Flags().VisitAll(func(pf *pflag.Flag) {
		if pf.Changed {
			return
		}
		flag, ok := m.lookup(pf)
		if !ok || flag.EnvHandler == nil {
			return
		}
		for _, key := range pf.Annotations[annotationEnvKey] {
			val, set := os.LookupEnv(prefix + key)
			if !set {
				continue
			}
			if err := flag.EnvHandler(pf, val); err != nil {
				errs = append(errs, err)
			}
			return
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("while updating flags from environment: %w", errors.Join(errs...))
	}
	return nil
}

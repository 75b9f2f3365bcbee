// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package starter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sylabs/passwd-overlay/internal/pkg/util/fs"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/fs/files"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/priv"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/sessiondir"
	"github.com/sylabs/passwd-overlay/internal/pkg/util/user"
	"github.com/sylabs/passwd-overlay/pkg/sylog"
	"github.com/sylabs/passwd-overlay/pkg/util/bind"
	"github.com/sylabs/passwd-overlay/pkg/util/singularityconf"
	"go.yaml.in/yaml/v3"
)

// SessionOptions describes a container session to prepare files for.
type SessionOptions struct {
	// Rootfs is the mounted container root filesystem.
	Rootfs string
	// SessionDir is an existing session directory. A new one is created
	// under the configured prefix when empty.
	SessionDir string
	// Home overrides the home directory written in the passwd entry.
	Home string
	// Config defaults to the current singularity.conf configuration.
	Config *singularityconf.File

	uidSource files.UIDSource
}

// Plan lists the binds the container startup must perform for the prepared
// session files.
type Plan struct {
	SessionDir string      `json:"sessiondir,omitempty" yaml:"sessiondir,omitempty"`
	Binds      []bind.Path `json:"binds" yaml:"binds"`
}

// WriteYAML writes the plan as a YAML document.
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("while encoding bind plan: %w", err)
	}
	return enc.Close()
}

// BindSpec returns the plan binds in --bind format.
func (p *Plan) BindSpec() string {
	return bind.FormatBindPaths(p.Binds)
}

func rootfsResolver(rootfs string) func() (string, error) {
	return func() (string, error) {
		if rootfs == "" {
			return "", errors.New("no container root filesystem specified")
		}
		path, err := filepath.Abs(rootfs)
		if err != nil {
			return "", err
		}
		if !fs.IsDir(path) {
			return "", fmt.Errorf("container root filesystem %s is not a directory", path)
		}
		return path, nil
	}
}

// PrepareSessionFiles generates the session files of a container and returns
// the binds they require. A returned error means the container must not be
// started.
func PrepareSessionFiles(opts SessionOptions) (*Plan, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = singularityconf.GetCurrentConfig()
	}
	if cfg == nil {
		return nil, errors.New("no configuration loaded")
	}

	plan := &Plan{Binds: []bind.Path{}}
	if !cfg.ConfigPasswd {
		sylog.Verbosef("Skipping passwd file generation, disabled by configuration")
		return plan, nil
	}

	sessDir := &sessiondir.Dir{
		Path:   opts.SessionDir,
		Prefix: cfg.SessiondirPrefix,
		Mode:   os.FileMode(cfg.SessiondirMode),
	}
	uidSource := opts.uidSource
	if uidSource == nil {
		uidSource = priv.Context{}
	}
	requests := &bind.Requests{}

	passwd := &files.PasswdOverlay{
		UIDSource:  uidSource,
		Identities: &user.Resolver{PasswdFile: cfg.PasswdFile},
		Rootfs:     rootfsResolver(opts.Rootfs),
		SessionDir: sessDir.Get,
		Binder:     requests,
		Home:       opts.Home,
	}
	if err := passwd.Ensure(); err != nil {
		return nil, err
	}

	if requests.Len() > 0 {
		dir, err := sessDir.Get()
		if err != nil {
			return nil, err
		}
		plan.SessionDir = dir
		plan.Binds = requests.Paths(dir)
	}
	return plan, nil
}

// SessionFiles is PrepareSessionFiles for the startup sequence: any failure
// aborts the process with files.ExitStatus.
func SessionFiles(opts SessionOptions) *Plan {
	plan, err := PrepareSessionFiles(opts)
	if err != nil {
		var fatal *files.FatalError
		if errors.As(err, &fatal) {
			sylog.Fatalf("While preparing session files (%s): %s", fatal.Kind, err)
		} else {
			sylog.Fatalf("While preparing session files: %s", err)
		}
		return nil
	}
	return plan
}

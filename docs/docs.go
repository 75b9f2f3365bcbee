// Copyright (c) 2017-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package docs

// Global content for help and man pages
const (

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// main command
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	PasswdOverlayUse   string = `passwd-overlay [global options...]`
	PasswdOverlayShort string = `Prepare per-session identity files for a container`
	PasswdOverlayLong  string = `
  passwd-overlay generates the session copy of the container /etc/passwd
  with an entry for the calling user appended, so that an unprivileged user
  has a valid identity inside the container. The container image is never
  modified: the generated file lives in the session directory and is bound
  read-only over /etc/passwd when the container starts.`
	PasswdOverlayExample string = `
  $ passwd-overlay help <command> [<subcommand>]
  $ passwd-overlay help prepare`

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// prepare command
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	PrepareUse   string = `prepare [prepare options...]`
	PrepareShort string = `Generate the session passwd file of a container`
	PrepareLong  string = `
  The 'prepare' command copies /etc/passwd from the container root filesystem
  into the session directory and appends an entry for the calling user. The
  binds required to expose the generated files inside the container are
  printed on standard output, or written to the file given with --bind-plan.

  Nothing is generated when running as root, when the container has no
  /etc/passwd, or when 'config passwd = no' is set in the configuration file.

  Any failure while generating the file is fatal: the command exits with
  status 255 and the container must not be started.`
	PrepareExample string = `
  Generate the passwd file in a new session directory:
  $ passwd-overlay prepare --rootfs /var/lib/containers/alpine

  Reuse an existing session directory and override the home directory:
  $ passwd-overlay prepare --rootfs ./rootfs --sessiondir /tmp/session --home /data/alice

  Print the binds in --bind format:
  $ passwd-overlay prepare --rootfs ./rootfs --format bind`

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// config command
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	ConfigUse   string = `config`
	ConfigShort string = `Print the active configuration`
	ConfigLong  string = `
  The 'config' command prints the configuration in effect, after defaults
  are applied, in the configuration file format. Its output is a valid
  configuration file.`
	ConfigExample string = `
  $ passwd-overlay config > /etc/singularity/passwd-overlay.conf
  $ passwd-overlay --config custom.conf config`
)

// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package singularityconf

// currentConfig corresponds to the current configuration, may
// be useful for packages requiring to share the same configuration.
var currentConfig *File

// SetCurrentConfig sets the provided configuration as the current
// configuration.
func SetCurrentConfig(config *File) {
	currentConfig = config
}

// GetCurrentConfig returns the current configuration if any.
func GetCurrentConfig() *File {
	return currentConfig
}

// File describes the singularity.conf file options used while preparing
// session files.
type File struct {
	ConfigPasswd     bool   `default:"yes" authorized:"yes,no" directive:"config passwd"`
	SessiondirPrefix string `default:"/var/lib/singularity/mnt/session" directive:"sessiondir prefix"`
	SessiondirMode   uint   `default:"700" directive:"sessiondir mode"`
	PasswdFile       string `default:"/etc/passwd" directive:"host passwd file"`
}

const TemplateAsset = `# SINGULARITY.CONF
# This is the global configuration file for Singularity session file
# preparation. This file controls which identity files are generated for a
# container session, and as a result this file must be owned by root.

# CONFIG PASSWD: [BOOL]
# DEFAULT: yes
# If /etc/passwd exists within the container, this will automatically append
# an entry for the calling user.
config passwd = {{ if eq .ConfigPasswd true }}yes{{ else }}no{{ end }}

# SESSIONDIR PREFIX: [STRING]
# DEFAULT: /var/lib/singularity/mnt/session
# Directory in which per-run session directories are created when no session
# directory is given on the command line.
sessiondir prefix = {{ .SessiondirPrefix }}

# SESSIONDIR MODE: [OCTAL]
# DEFAULT: 700
# Permission bits of session directories created under the prefix.
sessiondir mode = {{ printf "%o" .SessiondirMode }}

# HOST PASSWD FILE: [STRING]
# DEFAULT: /etc/passwd
# Host passwd database used to resolve the calling user's identity.
host passwd file = {{ .PasswdFile }}
`

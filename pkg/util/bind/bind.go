// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bind

import (
	"sort"
	"strings"
)

// Option represents a bind option with its associated
// value if any.
type Option struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Path stores a bind path specification. Source and Destination
// paths are required.
type Path struct {
	Source      string             `json:"source" yaml:"source"`
	Destination string             `json:"destination" yaml:"destination"`
	Options     map[string]*Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Readonly returns true if the ro option was set for a BindPath.
func (b *Path) Readonly() bool {
	return b.Options != nil && b.Options["ro"] != nil
}

// String returns the bind path in src:dst[:options] format, as accepted by
// --bind and SINGULARITY_BIND. Options are sorted by name.
func (b *Path) String() string {
	s := b.Source + ":" + b.Destination
	if len(b.Options) == 0 {
		return s
	}

	opts := make([]string, 0, len(b.Options))
	for name, o := range b.Options {
		if o != nil && o.Value != "" {
			opts = append(opts, name+"="+o.Value)
		} else {
			opts = append(opts, name)
		}
	}
	sort.Strings(opts)
	return s + ":" + strings.Join(opts, ",")
}

// FormatBindPaths joins paths into a single comma separated bind
// specification.
func FormatBindPaths(paths []Path) string {
	s := make([]string, len(paths))
	for i := range paths {
		s[i] = paths[i].String()
	}
	return strings.Join(s, ",")
}

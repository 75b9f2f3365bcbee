// Copyright (c) 2022-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bind

import (
	"testing"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{
			name: "srcDst",
			path: Path{Source: "/opt", Destination: "/other"},
			want: "/opt:/other",
		},
		{
			name: "srcDstRO",
			path: Path{
				Source:      "/opt",
				Destination: "/other",
				Options: map[string]*Option{
					"ro": {},
				},
			},
			want: "/opt:/other:ro",
		},
		{
			name: "srcDstOptionsSorted",
			path: Path{
				Source:      "/opt",
				Destination: "/other",
				Options: map[string]*Option{
					"rw": {},
					"id": {Value: "2"},
				},
			},
			want: "/opt:/other:id=2,rw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadonly(t *testing.T) {
	p := Path{Source: "/a", Destination: "/b"}
	if p.Readonly() {
		t.Errorf("Readonly() = true without options")
	}
	p.Options = map[string]*Option{"ro": {}}
	if !p.Readonly() {
		t.Errorf("Readonly() = false with ro option")
	}
}

func TestFormatBindPaths(t *testing.T) {
	paths := []Path{
		{Source: "/s/passwd", Destination: "/etc/passwd", Options: map[string]*Option{"ro": {}}},
		{Source: "/s/group", Destination: "/etc/group"},
	}
	want := "/s/passwd:/etc/passwd:ro,/s/group:/etc/group"
	if got := FormatBindPaths(paths); got != want {
		t.Errorf("FormatBindPaths() = %q, want %q", got, want)
	}
	if got := FormatBindPaths(nil); got != "" {
		t.Errorf("FormatBindPaths(nil) = %q, want empty", got)
	}
}

// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bind

import (
	"path/filepath"

	"github.com/samber/lo"
)

// Request is the intent to mount the session file Name over Destination
// inside the container. Nothing is mounted when a request is recorded.
type Request struct {
	Name        string `json:"name" yaml:"name"`
	Destination string `json:"destination" yaml:"destination"`
}

// Requests records bind requests for session files, to be carried out later
// in the container startup sequence.
type Requests struct {
	requests []Request
}

// RequestBind records that the session file name must be bind mounted over
// destination in the container.
func (r *Requests) RequestBind(name, destination string) {
	r.requests = append(r.requests, Request{Name: name, Destination: destination})
}

// List returns the recorded requests in submission order.
func (r *Requests) List() []Request {
	return append([]Request(nil), r.requests...)
}

// Len returns the number of recorded requests.
func (r *Requests) Len() int {
	return len(r.requests)
}

// Lookup returns the request targeting destination, if any.
func (r *Requests) Lookup(destination string) (Request, bool) {
	return lo.Find(r.requests, func(req Request) bool {
		return req.Destination == destination
	})
}

// Paths resolves the recorded requests against sessionDir into read-only bind
// paths.
func (r *Requests) Paths(sessionDir string) []Path {
	return lo.Map(r.requests, func(req Request, _ int) Path {
		return Path{
			Source:      filepath.Join(sessionDir, req.Name),
			Destination: req.Destination,
			Options: map[string]*Option{
				"ro": {},
			},
		}
	})
}

// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bind

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestRequests(t *testing.T) {
	var r Requests

	assert.Equal(t, r.Len(), 0)
	assert.Equal(t, len(r.Paths("/session")), 0)

	r.RequestBind("passwd", "/etc/passwd")
	r.RequestBind("group", "/etc/group")

	assert.Equal(t, r.Len(), 2)
	assert.DeepEqual(t, r.List(), []Request{
		{Name: "passwd", Destination: "/etc/passwd"},
		{Name: "group", Destination: "/etc/group"},
	})

	req, ok := r.Lookup("/etc/passwd")
	assert.Assert(t, ok)
	assert.Equal(t, req.Name, "passwd")

	_, ok = r.Lookup("/etc/shadow")
	assert.Assert(t, !ok)

	assert.DeepEqual(t, r.Paths("/session"), []Path{
		{Source: "/session/passwd", Destination: "/etc/passwd", Options: map[string]*Option{"ro": {}}},
		{Source: "/session/group", Destination: "/etc/group", Options: map[string]*Option{"ro": {}}},
	})
}

func TestRequestsListIsCopy(t *testing.T) {
	var r Requests
	r.RequestBind("passwd", "/etc/passwd")

	l := r.List()
	l[0].Name = "changed"

	assert.Equal(t, r.List()[0].Name, "passwd")
}

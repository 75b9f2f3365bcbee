// Copyright (c) 2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sylog

import (
	"bytes"
	"io"
	"os"
	"testing"

	"gotest.tools/v3/assert"
)

func withLevel(t *testing.T, level messageLevel) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	oldLevel := loggerLevel
	oldWriter := SetWriter(&buf)
	loggerLevel = level
	useColor = false
	t.Cleanup(func() {
		loggerLevel = oldLevel
		SetWriter(oldWriter)
	})
	return &buf
}

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		level  messageLevel
		logFn  func(string, ...interface{})
		expect string
	}{
		{
			name:   "InfoShown",
			level:  InfoLevel,
			logFn:  Infof,
			expect: "INFO:    hello\n",
		},
		{
			name:   "VerboseHidden",
			level:  InfoLevel,
			logFn:  Verbosef,
			expect: "",
		},
		{
			name:   "VerboseShown",
			level:  VerboseLevel,
			logFn:  Verbosef,
			expect: "VERBOSE: hello\n",
		},
		{
			name:   "WarningTrimsNewline",
			level:  InfoLevel,
			logFn:  Warningf,
			expect: "WARNING: hello\n",
		},
		{
			name:   "ErrorShownWhenQuiet",
			level:  LogLevel,
			logFn:  Errorf,
			expect: "ERROR:   hello\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := withLevel(t, tt.level)
			tt.logFn("hello\n")
			assert.Equal(t, buf.String(), tt.expect)
		})
	}
}

func TestFatalf(t *testing.T) {
	buf := withLevel(t, InfoLevel)

	status := -1
	exitFunc = func(code int) { status = code }
	defer func() { exitFunc = os.Exit }()

	Fatalf("could not copy %s", "passwd")
	assert.Equal(t, status, FatalExitStatus)
	assert.Equal(t, buf.String(), "FATAL:   could not copy passwd\n")
}

func TestWriter(t *testing.T) {
	withLevel(t, LogLevel)
	assert.Equal(t, Writer(), io.Discard)

	buf := withLevel(t, InfoLevel)
	assert.Equal(t, Writer(), io.Writer(buf))
}

// Copyright (c) 2017-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package sylog implements a basic logger for Singularity Go code to log
// messages in the same format as the C code.
package sylog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

type messageLevel int

const (
	FatalLevel    messageLevel = iota - 4 // FatalLevel    : -4
	ErrorLevel                            // ErrorLevel    : -3
	WarnLevel                             // WarnLevel     : -2
	LogLevel                              // LogLevel      : -1
	InfoLevel                             // InfoLevel     : 0
	VerboseLevel                          // VerboseLevel  : 1
	Verbose2Level                         // Verbose2Level : 2
	Verbose3Level                         // Verbose3Level : 3
	DebugLevel                            // DebugLevel    : 4
)

// FatalExitStatus is the status a process exits with after Fatalf.
const FatalExitStatus = 255

const messageLevelEnv = "SINGULARITY_MESSAGELEVEL"

var messageLabels = map[messageLevel]string{
	FatalLevel:    "FATAL",
	ErrorLevel:    "ERROR",
	WarnLevel:     "WARNING",
	LogLevel:      "LOG",
	InfoLevel:     "INFO",
	VerboseLevel:  "VERBOSE",
	Verbose2Level: "VERBOSE",
	Verbose3Level: "VERBOSE",
	DebugLevel:    "DEBUG",
}

var messageColors = map[messageLevel]*color.Color{
	FatalLevel: color.New(color.FgRed),
	ErrorLevel: color.New(color.FgHiRed),
	WarnLevel:  color.New(color.FgYellow),
	InfoLevel:  color.New(color.FgBlue),
}

var (
	loggerLevel = InfoLevel
	useColor    = false
	logWriter   = io.Writer(os.Stderr)
	exitFunc    = os.Exit
)

func init() {
	l, err := strconv.Atoi(os.Getenv(messageLevelEnv))
	if err == nil {
		loggerLevel = messageLevel(l)
	}
}

func (l messageLevel) String() string {
	str, ok := messageLabels[l]
	if !ok {
		str = "????"
	}
	return str
}

func prefix(level messageLevel) string {
	label := fmt.Sprintf("%-8s ", level.String()+":")
	if c, ok := messageColors[level]; ok && useColor {
		label = c.Sprint(label)
	}

	if loggerLevel < DebugLevel {
		return label
	}

	// in debug mode, show the pid and the calling function
	pc, _, _, ok := runtime.Caller(3)
	details := runtime.FuncForPC(pc)
	funcName := "????()"
	if ok && details != nil {
		parts := strings.Split(details.Name(), ".")
		funcName = parts[len(parts)-1] + "()"
	}
	return fmt.Sprintf("%s [U=%d,P=%d]%-30s", label, os.Getuid(), os.Getpid(), funcName)
}

func writef(w io.Writer, level messageLevel, format string, a ...interface{}) {
	if loggerLevel < level {
		return
	}

	message := fmt.Sprintf(format, a...)
	message = strings.TrimRight(message, "\n")

	fmt.Fprintf(w, "%s%s\n", prefix(level), message)
}

// Fatalf is equivalent to a call to Errorf followed by os.Exit(255). Code
// that may be imported by other projects should NOT use Fatalf.
func Fatalf(format string, a ...interface{}) {
	writef(logWriter, FatalLevel, format, a...)
	exitFunc(FatalExitStatus)
}

// Errorf writes an ERROR level message to the log but does not exit. This
// should be called when an error is being returned to the calling thread
func Errorf(format string, a ...interface{}) {
	writef(logWriter, ErrorLevel, format, a...)
}

// Warningf writes a WARNING level message to the log.
func Warningf(format string, a ...interface{}) {
	writef(logWriter, WarnLevel, format, a...)
}

// Infof writes an INFO level message to the log. By default, INFO level messages
// will always be output (unless running in silent)
func Infof(format string, a ...interface{}) {
	writef(logWriter, InfoLevel, format, a...)
}

// Verbosef writes a VERBOSE level message to the log. This should probably be
// deprecated since the granularity is often too fine to be useful.
func Verbosef(format string, a ...interface{}) {
	writef(logWriter, VerboseLevel, format, a...)
}

// Debugf writes a DEBUG level message to the log.
func Debugf(format string, a ...interface{}) {
	writef(logWriter, DebugLevel, format, a...)
}

// SetLevel explicitly sets the loggerLevel and color output, and exports the
// level so that child processes log the same way.
func SetLevel(l int, colorize bool) {
	loggerLevel = messageLevel(l)
	useColor = colorize && !color.NoColor
	os.Setenv(messageLevelEnv, strconv.Itoa(l))
}

// GetLevel returns the current log level as integer
func GetLevel() int {
	return int(loggerLevel)
}

// SetWriter changes the writer messages are written to and returns the
// previous one.
func SetWriter(w io.Writer) io.Writer {
	old := logWriter
	logWriter = w
	return old
}

// Writer returns an io.Writer to pass to an external packages logging utility.
// i.e when --quiet option is set, this function returns io.Discard writer to ignore output
func Writer() io.Writer {
	if loggerLevel <= LogLevel {
		return io.Discard
	}
	return logWriter
}

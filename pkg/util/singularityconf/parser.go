// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package singularityconf

import (
	"bufio"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// octalDirectives are unsigned directives written in octal notation.
var octalDirectives = map[string]bool{
	"sessiondir mode": true,
}

// parseDirectives reads "key = value" lines, ignoring comments and blank
// lines. A directive may appear multiple times, the last value wins.
func parseDirectives(r io.Reader) (map[string]string, error) {
	directives := make(map[string]string)

	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("line %d: missing '=' in %q", n, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errors.Errorf("line %d: empty directive name", n)
		}
		directives[key] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "while reading configuration")
	}
	return directives, nil
}

func setField(f reflect.Value, directive, value string) error {
	switch f.Kind() {
	case reflect.Bool:
		switch value {
		case "yes":
			f.SetBool(true)
		case "no":
			f.SetBool(false)
		default:
			return errors.Errorf("value %q for directive %q is not yes or no", value, directive)
		}
	case reflect.String:
		f.SetString(value)
	case reflect.Uint:
		base := 10
		if octalDirectives[directive] {
			base = 8
		}
		v, err := strconv.ParseUint(value, base, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid value for directive %q", directive)
		}
		f.SetUint(v)
	default:
		return errors.Errorf("unsupported type %s for directive %q", f.Kind(), directive)
	}
	return nil
}

// Parse parses the configuration read from r. Directives missing from r get
// their default value, unknown directives are rejected.
func Parse(r io.Reader) (*File, error) {
	directives, err := parseDirectives(r)
	if err != nil {
		return nil, err
	}

	c := new(File)
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	known := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		directive := field.Tag.Get("directive")
		if directive == "" {
			continue
		}
		known[directive] = true

		value, ok := directives[directive]
		if !ok {
			value = field.Tag.Get("default")
		}
		if authorized := field.Tag.Get("authorized"); authorized != "" {
			if !isAuthorized(value, authorized) {
				return nil, errors.Errorf("value %q for directive %q is not one of %s", value, directive, authorized)
			}
		}
		if value == "" && field.Type.Kind() != reflect.String {
			continue
		}
		if err := setField(v.Field(i), directive, value); err != nil {
			return nil, err
		}
	}

	for d := range directives {
		if !known[d] {
			return nil, errors.Errorf("unknown directive %q", d)
		}
	}

	return c, nil
}

func isAuthorized(value, authorized string) bool {
	for _, a := range strings.Split(authorized, ",") {
		if value == a {
			return true
		}
	}
	return false
}

// ParseFile parses the configuration file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open configuration file %s", path)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing %s", path)
	}
	return c, nil
}

// GetConfig returns the configuration from path, or the default configuration
// if path is empty.
func GetConfig(path string) (*File, error) {
	if path == "" {
		return Parse(strings.NewReader(""))
	}
	return ParseFile(path)
}

// Generate writes a configuration file based on TemplateAsset and the values
// of c.
func Generate(w io.Writer, c *File) error {
	t, err := template.New("singularity.conf").Parse(TemplateAsset)
	if err != nil {
		return errors.Wrap(err, "unable to parse configuration template")
	}
	if err := t.Execute(w, c); err != nil {
		return errors.Wrap(err, "unable to execute configuration template")
	}
	return nil
}

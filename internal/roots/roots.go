// Package roots turns command-line arguments into the set of directories
// a run operates on.
package roots

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	ErrInvalidRoot  = errors.New("invalid root")
	ErrNoValidRoots = errors.New("no valid paths provided")
)

// InvalidRootError names a path that is neither a directory nor a
// readable list file.
type InvalidRootError struct {
	Path string
	Err  error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid root %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid root %s: not a directory", e.Path)
}

func (e *InvalidRootError) Is(target error) bool { return target == ErrInvalidRoot }

func (e *InvalidRootError) Unwrap() error { return e.Err }

// ParseList splits list-file content on commas, spaces, tabs and newlines,
// dropping empty tokens and duplicates while keeping first-seen order.
func ParseList(content string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(content, "\n") {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, f := range fields {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// Collector expands arguments into validated root directories.
type Collector struct {
	Fs afero.Fs
}

// NewCollector returns a Collector backed by the host filesystem.
func NewCollector() *Collector {
	return &Collector{Fs: afero.NewOsFs()}
}

// Collect resolves each argument: a directory is taken as a root, a regular
// file is read as a list of roots. Roots are deduplicated by canonical path
// and every one of them must be an existing directory.
func (c *Collector) Collect(args []string) ([]string, error) {
	fsys := c.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(p string) error {
		key, err := canonical(p)
		if err != nil {
			return &InvalidRootError{Path: p, Err: err}
		}
		if _, ok := seen[key]; ok {
			logrus.WithField("root", p).Debug("duplicate root skipped")
			return nil
		}
		seen[key] = struct{}{}
		out = append(out, p)
		return nil
	}

	for _, arg := range args {
		info, err := fsys.Stat(arg)
		if err != nil {
			return nil, &InvalidRootError{Path: arg, Err: err}
		}
		switch {
		case info.IsDir():
			if err := add(arg); err != nil {
				return nil, err
			}
		case info.Mode().IsRegular():
			content, err := afero.ReadFile(fsys, arg)
			if err != nil {
				return nil, &InvalidRootError{Path: arg, Err: err}
			}
			entries := ParseList(string(content))
			logrus.WithFields(logrus.Fields{"list": arg, "entries": len(entries)}).Debug("read root list")
			for _, p := range entries {
				if err := add(p); err != nil {
					return nil, err
				}
			}
		default:
			return nil, &InvalidRootError{Path: arg}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoValidRoots
	}

	for _, p := range out {
		info, err := fsys.Stat(p)
		if err != nil {
			return nil, &InvalidRootError{Path: p, Err: err}
		}
		if !info.IsDir() {
			return nil, &InvalidRootError{Path: p}
		}
	}

	return out, nil
}

// canonical returns the absolute, cleaned form of p with symlinks resolved
// when the path exists on the host.
func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

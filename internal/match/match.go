// Package match compiles include/exclude glob patterns into a predicate
// over root-relative file paths.
package match

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every file.
const DefaultInclude = "**"

var ErrInvalidPattern = errors.New("invalid glob pattern")

// PatternError carries the pattern that failed to compile.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob: %q", e.Pattern)
}

func (e *PatternError) Unwrap() error { return ErrInvalidPattern }

type pattern struct {
	raw      string
	basename bool
}

func compilePattern(raw string) (pattern, error) {
	raw = strings.TrimSpace(raw)
	if !doublestar.ValidatePattern(raw) {
		return pattern{}, &PatternError{Pattern: raw}
	}
	return pattern{raw: raw, basename: !strings.Contains(raw, "/")}, nil
}

// matches tries the file name for slash-free patterns, then rel, then each
// of the longer forms of the same path.
func (p pattern) matches(rel string, full []string) bool {
	if p.basename {
		return p.match(path.Base(rel))
	}
	if p.match(rel) {
		return true
	}
	for _, f := range full {
		if p.match(f) {
			return true
		}
	}
	return false
}

func (p pattern) match(target string) bool {
	ok, err := doublestar.Match(p.raw, target)
	return err == nil && ok
}

// Predicate decides whether a file is a deletion candidate. Include and
// exclude are kept apart so that exclude can only ever reject.
type Predicate struct {
	include pattern
	exclude *pattern
}

// Compile builds a Predicate. An empty include selects every file and an
// empty exclude disables exclusion.
//
// Patterns without a slash are matched against the file name. Anything
// else is matched against the slash-separated path relative to the root
// and against the longer forms passed to MatchPaths, so "keep/**",
// "job/keep/**" and "/data/job/keep/**" all select the same files under
// the root /data/job.
func Compile(include, exclude string) (*Predicate, error) {
	if strings.TrimSpace(include) == "" {
		include = DefaultInclude
	}
	inc, err := compilePattern(include)
	if err != nil {
		return nil, err
	}

	p := &Predicate{include: inc}
	if strings.TrimSpace(exclude) != "" {
		exc, err := compilePattern(exclude)
		if err != nil {
			return nil, err
		}
		p.exclude = &exc
	}
	return p, nil
}

// Match reports whether rel satisfies include and does not satisfy exclude.
// A nil Predicate matches everything.
func (p *Predicate) Match(rel string) bool {
	return p.MatchPaths(rel)
}

// MatchPaths is Match with extra slash-separated spellings of the same
// file, such as its absolute path. A pattern matching any of them counts.
func (p *Predicate) MatchPaths(rel string, full ...string) bool {
	if p == nil {
		return true
	}
	if !p.include.matches(rel, full) {
		return false
	}
	return p.exclude == nil || !p.exclude.matches(rel, full)
}

func (p *Predicate) String() string {
	if p == nil {
		return DefaultInclude
	}
	if p.exclude == nil {
		return p.include.raw
	}
	return p.include.raw + " !" + p.exclude.raw
}

// Package scan enumerates the route source files a generation run should
// look at. It walks the configured source roots and filters candidates with
// include and exclude patterns, where every pattern entry is tried both as a
// filename glob and as a regular expression.
package scan

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Options configure a Scanner.
type Options struct {
	// Roots are the source directories to walk. Roots that do not exist
	// are skipped silently; projects routinely lack some of the defaults.
	Roots []string
	// TestRoots are walked in addition to Roots when IncludeTests is set.
	TestRoots []string

	IncludeJava  bool
	IncludeXML   bool
	IncludeTests bool

	// Includes and Excludes filter candidates by root-relative path or by
	// bare file name. An empty include list admits everything. Exclusion
	// wins over inclusion.
	Includes []string
	Excludes []string
}

// compiledPattern holds one filter entry in both of its interpretations: a
// filename glob and an anchored regular expression. Either matching counts.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	regex   *regexp.Regexp
}

// Scanner discovers candidate route source files.
type Scanner struct {
	opts     Options
	includes []compiledPattern
	excludes []compiledPattern
}

// Result partitions the discovered candidates by dialect. Both slices are
// deduplicated and sorted so downstream work is deterministic.
type Result struct {
	Java []string
	XML  []string
}

// New compiles the option patterns and returns a ready Scanner. An entry
// that is neither a valid glob nor a valid regular expression is a
// configuration error.
func New(opts Options) (*Scanner, error) {
	s := &Scanner{opts: opts}

	var err error
	if s.includes, err = compilePatterns(opts.Includes); err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	if s.excludes, err = compilePatterns(opts.Excludes); err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return s, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	var compiled []compiledPattern
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		cp := compiledPattern{pattern: pattern}
		if g, err := glob.Compile(pattern, '/'); err == nil {
			cp.glob = g
		}
		if re, err := regexp.Compile("^(?:" + pattern + ")$"); err == nil {
			cp.regex = re
		}
		if cp.glob == nil && cp.regex == nil {
			return nil, fmt.Errorf("%q is neither a glob nor a regular expression", pattern)
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// Roots returns the directories this scanner walks, honoring IncludeTests.
func (s *Scanner) Roots() []string {
	roots := make([]string, 0, len(s.opts.Roots)+len(s.opts.TestRoots))
	roots = append(roots, s.opts.Roots...)
	if s.opts.IncludeTests {
		roots = append(roots, s.opts.TestRoots...)
	}
	return roots
}

// Scan walks every existing root and returns the candidate files per
// dialect. Dialects whose include flag is off contribute nothing even when
// matching files exist.
func (s *Scanner) Scan() (*Result, error) {
	seen := make(map[string]bool)
	result := &Result{}

	for _, root := range s.Roots() {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat source root %s: %w", root, err)
		}
		if !info.IsDir() {
			continue
		}

		err = filepath.Walk(root, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}

			relPath, err := filepath.Rel(root, filePath)
			if err != nil {
				return err
			}
			relPath = filepath.ToSlash(relPath)

			if !s.selected(relPath) {
				return nil
			}

			clean := filepath.Clean(filePath)
			if seen[clean] {
				return nil
			}
			seen[clean] = true

			switch strings.ToLower(filepath.Ext(filePath)) {
			case ".java":
				if s.opts.IncludeJava {
					result.Java = append(result.Java, clean)
				}
			case ".xml":
				if s.opts.IncludeXML {
					result.XML = append(result.XML, clean)
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking source root %s: %w", root, err)
		}
	}

	sort.Strings(result.Java)
	sort.Strings(result.XML)
	return result, nil
}

// selected applies the include and exclude filters to a root-relative path.
func (s *Scanner) selected(relPath string) bool {
	if matchesAnyPattern(relPath, s.excludes) {
		return false
	}
	if len(s.includes) == 0 {
		return true
	}
	return matchesAnyPattern(relPath, s.includes)
}

// matchesAnyPattern checks the relative path and, because filter entries are
// often written against bare file names, the base name as well.
func matchesAnyPattern(relPath string, patterns []compiledPattern) bool {
	base := path.Base(relPath)
	for _, cp := range patterns {
		if cp.glob != nil && (cp.glob.Match(relPath) || cp.glob.Match(base)) {
			return true
		}
		if cp.regex != nil && (cp.regex.MatchString(relPath) || cp.regex.MatchString(base)) {
			return true
		}
	}
	return false
}

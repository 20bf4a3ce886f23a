package csimple

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/routegen/csimple/internal/extract"
)

// SyntheticOwnerFQN names units generated from document-sourced sites, which
// have no owning Java type of their own.
const SyntheticOwnerFQN = "org.apache.camel.language.csimple.XmlRouteBuilder"

// CompileError is a fatal script compilation failure. A broken expression is
// a build defect the developer must fix, so the run aborts instead of
// skipping the site.
type CompileError struct {
	File   string
	Script string
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot compile csimple script %q in %s: %s", e.Script, e.File, e.Reason)
}

// GeneratedUnit is the compiled source artifact for one extraction site.
type GeneratedUnit struct {
	// FQN is the fully qualified name of the generated class.
	FQN string
	// Kind carries the usage kind over from the site.
	Kind extract.Kind
	// Code is the complete Java source text.
	Code string
}

// Path maps the unit identity to its source file location relative to the
// output directory.
func (u *GeneratedUnit) Path() string {
	return strings.ReplaceAll(u.FQN, ".", "/") + ".java"
}

// Compiler turns extraction sites into generated units. It owns the
// per-owner sequence counters for the run, so unit identities are stable as
// long as sites arrive in a deterministic order.
type Compiler struct {
	cfg       Config
	aliasKeys []string
	sequences map[string]int
}

// NewCompiler creates a compiler for one run.
func NewCompiler(cfg Config) *Compiler {
	keys := make([]string, 0, len(cfg.Aliases))
	for key := range cfg.Aliases {
		keys = append(keys, key)
	}
	// longest first so an alias never shadows a longer one it prefixes
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Compiler{cfg: cfg, aliasKeys: keys, sequences: map[string]int{}}
}

// Compile produces the generated unit for one extraction site. The unit's
// identity is the owning type name plus a sequence suffix counted per owner,
// e.g. com.example.MyRoutes$$Csimple1 for the first site in that class.
func (c *Compiler) Compile(site extract.Site) (*GeneratedUnit, error) {
	script := strings.TrimSpace(site.Script)
	if script == "" {
		return nil, &CompileError{File: site.File, Script: site.Script, Reason: "empty script"}
	}
	script = c.expandAliases(script)

	owner := site.OwnerFQN
	if owner == "" {
		owner = SyntheticOwnerFQN
	}
	if !validFQN(owner) {
		return nil, &CompileError{
			File:   site.File,
			Script: script,
			Reason: fmt.Sprintf("invalid owning type name %q", owner),
		}
	}

	c.sequences[owner]++
	fqn := fmt.Sprintf("%s$$Csimple%d", owner, c.sequences[owner])

	var expr string
	var err error
	if site.Kind == extract.KindPredicate {
		expr, err = compilePredicate(script)
	} else {
		expr, err = compileValue(script)
	}
	if err != nil {
		return nil, &CompileError{File: site.File, Script: script, Reason: err.Error()}
	}

	return &GeneratedUnit{
		FQN:  fqn,
		Kind: site.Kind,
		Code: render(fqn, script, site.Kind, expr, c.cfg.Imports),
	}, nil
}

// expandAliases rewrites configured alias tokens in one left-to-right pass.
// Expanded text is never rescanned, so aliases cannot expand each other.
func (c *Compiler) expandAliases(script string) string {
	if len(c.aliasKeys) == 0 {
		return script
	}
	var b strings.Builder
	b.Grow(len(script))
	for i := 0; i < len(script); {
		matched := false
		for _, key := range c.aliasKeys {
			if strings.HasPrefix(script[i:], key) {
				b.WriteString(c.cfg.Aliases[key])
				i += len(key)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(script[i])
			i++
		}
	}
	return b.String()
}

// validFQN checks that a name consists of dot-separated Java identifier
// segments.
func validFQN(fqn string) bool {
	for _, segment := range strings.Split(fqn, ".") {
		if segment == "" {
			return false
		}
		for i, r := range segment {
			head := r == '_' || r == '$' || unicode.IsLetter(r)
			if i == 0 && !head {
				return false
			}
			if !head && !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

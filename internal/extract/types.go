// Package extract discovers csimple scripts embedded in route sources. It
// ships two extractors: a tree-sitter based one for Java route builder
// classes and an element-tree based one for XML route documents. Both produce
// the same Site model so the rest of the pipeline does not care which dialect
// a script came from.
package extract

import (
	"context"
	"fmt"
)

// Kind tells how a script is used at its call site, which decides the entry
// point of the generated class.
type Kind string

const (
	// KindValue marks a script evaluated for its result.
	KindValue Kind = "value"
	// KindPredicate marks a script evaluated as a boolean condition.
	KindPredicate Kind = "predicate"
)

// Dialect identifies the source flavor a site was extracted from.
type Dialect string

const (
	DialectJava Dialect = "java"
	DialectXML  Dialect = "xml"
)

// Site is one discovered csimple script together with the context needed to
// compile it: how it is used and which type declared it.
type Site struct {
	// Script is the raw script text with surrounding whitespace removed.
	Script string
	// Kind is the usage at the call site.
	Kind Kind
	// OwnerFQN is the fully qualified name of the declaring Java type.
	// Document-sourced sites have no owning type and leave it empty.
	OwnerFQN string
	// File is the path of the source file the site was found in.
	File string
	// Dialect records which extractor produced the site.
	Dialect Dialect
}

// Extractor inspects one source file and returns the csimple sites it
// declares, in document order.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Site, error)
}

// ParseError reports a source file the extractor could not make sense of.
// Callers recover from it: the file contributes no sites and the run
// continues with the other files.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// predicateParents names the route DSL calls and elements whose expression
// argument is evaluated as a condition rather than a value.
var predicateParents = map[string]bool{
	"when":                true,
	"filter":              true,
	"onWhen":              true,
	"handled":             true,
	"continued":           true,
	"retryWhile":          true,
	"completionPredicate": true,
	"validate":            true,
	"loopDoWhile":         true,
}

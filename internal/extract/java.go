package extract

import (
	"context"
	"errors"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// JavaExtractor finds csimple(...) call sites in Java route builder sources.
type JavaExtractor struct {
	language *sitter.Language
}

// NewJavaExtractor creates an extractor for the Java dialect.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{
		language: sitter.NewLanguage(java.Language()),
	}
}

// Extract parses one Java source file and returns its csimple sites in
// document order. Files that declare no top-level class yield no sites:
// interfaces, enums and the like cannot be route builders.
func (e *JavaExtractor) Extract(ctx context.Context, path string) ([]Site, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{File: path, Err: errors.New("unparseable java source")}
	}
	defer tree.Close()

	root := tree.RootNode()

	class := findChildByType(root, "class_declaration")
	if class == nil {
		return nil, nil
	}

	owner := extractNodeText(class.ChildByFieldName("name"), source)
	if owner == "" {
		return nil, nil
	}
	if pkg := packageName(root, source); pkg != "" {
		owner = pkg + "." + owner
	}

	var sites []Site
	e.collect(class, source, false, func(script string, predicate bool) {
		script = strings.TrimSpace(script)
		if script == "" {
			return
		}
		kind := KindValue
		if predicate {
			kind = KindPredicate
		}
		sites = append(sites, Site{
			Script:   script,
			Kind:     kind,
			OwnerFQN: owner,
			File:     path,
			Dialect:  DialectJava,
		})
	})
	return sites, nil
}

// collect walks the syntax tree in document order, tracking whether the
// current subtree sits in an argument position that the route DSL evaluates
// as a predicate. Tree-sitter exposes no parent links, so the usage context
// travels down the recursion instead.
func (e *JavaExtractor) collect(node *sitter.Node, source []byte, inPredicate bool, emit func(script string, predicate bool)) {
	if node == nil {
		return
	}

	if node.Kind() == "method_invocation" {
		name := extractNodeText(node.ChildByFieldName("name"), source)
		if name == "csimple" {
			if script, ok := stringArgument(node, source); ok {
				emit(script, inPredicate || onPredicateChain(node, source))
			}
		}
		argPredicate := predicateParents[name]
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(uint(i))
			if child.Kind() == "argument_list" {
				e.collect(child, source, argPredicate, emit)
			} else {
				e.collect(child, source, inPredicate, emit)
			}
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.collect(node.Child(uint(i)), source, inPredicate, emit)
	}
}

// onPredicateChain reports whether the invocation is chained directly onto a
// predicate-expecting DSL call, e.g. filter().csimple("...").
func onPredicateChain(node *sitter.Node, source []byte) bool {
	obj := node.ChildByFieldName("object")
	if obj == nil || obj.Kind() != "method_invocation" {
		return false
	}
	return predicateParents[extractNodeText(obj.ChildByFieldName("name"), source)]
}

// stringArgument returns the decoded value of the invocation's first string
// literal argument. Calls whose script is built at runtime rather than
// written as a literal cannot be compiled ahead of time and are skipped.
func stringArgument(node *sitter.Node, source []byte) (string, bool) {
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(uint(i))
		switch child.Kind() {
		case "string_literal":
			return unquoteJava(extractNodeText(child, source)), true
		case "(", ",", ")":
			continue
		default:
			return "", false
		}
	}
	return "", false
}

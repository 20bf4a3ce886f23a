package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// findChildByType finds the first direct child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// packageName returns the file's package declaration, or "" when the file
// lives in the default package.
func packageName(root *sitter.Node, source []byte) string {
	decl := findChildByType(root, "package_declaration")
	if decl == nil {
		return ""
	}
	nameNode := findChildByType(decl, "scoped_identifier")
	if nameNode == nil {
		nameNode = findChildByType(decl, "identifier")
	}
	return extractNodeText(nameNode, source)
}

// unquoteJava strips the surrounding quotes from a Java string literal and
// decodes the escape sequences the literal may carry.
func unquoteJava(lit string) string {
	if len(lit) >= 2 && strings.HasPrefix(lit, `"`) && strings.HasSuffix(lit, `"`) {
		lit = lit[1 : len(lit)-1]
	}
	if !strings.Contains(lit, `\`) {
		return lit
	}

	var b strings.Builder
	b.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			b.WriteByte(c)
			continue
		}
		i++
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			// keep unknown escapes verbatim
			b.WriteByte('\\')
			b.WriteByte(lit[i])
		}
	}
	return b.String()
}

package csimple

import (
	"fmt"
	"strings"

	"github.com/routegen/csimple/internal/extract"
)

// GeneratedHeader is stamped on every generated file so humans and tools
// know not to edit them.
const GeneratedHeader = "Generated by camel build tools - do NOT edit this file!"

// fixedImports is the preamble every generated unit carries: what the
// support base class and the helper statics need at compile time.
const fixedImports = `import java.util.*;
import java.util.concurrent.*;
import java.util.function.*;
import java.util.stream.*;

import org.apache.camel.*;
import org.apache.camel.spi.*;
import org.apache.camel.util.*;

import static org.apache.camel.language.csimple.CSimpleHelper.*;
`

// render produces the complete Java source for one generated unit. The
// configured imports come after the fixed preamble, already sorted by the
// configuration loader.
func render(fqn, script string, kind extract.Kind, expr string, imports []string) string {
	pkg, class := splitFQN(fqn)

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", GeneratedHeader)
	if pkg != "" {
		fmt.Fprintf(&b, "package %s;\n", pkg)
	}
	b.WriteString("\n")
	b.WriteString(fixedImports)
	for _, imp := range imports {
		b.WriteString(imp)
		if !strings.HasSuffix(imp, ";") {
			b.WriteString(";")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("@SuppressWarnings(\"unchecked\")\n")
	fmt.Fprintf(&b, "public class %s extends org.apache.camel.language.csimple.CSimpleSupport {\n", class)
	b.WriteString("\n")
	fmt.Fprintf(&b, "    private static final boolean PREDICATE = %t;\n", kind == extract.KindPredicate)
	fmt.Fprintf(&b, "    private static final String TEXT = %s;\n", javaQuote(script))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    public %s() {\n    }\n", class)
	b.WriteString("\n")
	b.WriteString("    @Override\n")
	b.WriteString("    public boolean isPredicate() {\n")
	b.WriteString("        return PREDICATE;\n")
	b.WriteString("    }\n")
	b.WriteString("\n")
	b.WriteString("    @Override\n")
	b.WriteString("    public String getText() {\n")
	b.WriteString("        return TEXT;\n")
	b.WriteString("    }\n")
	b.WriteString("\n")
	b.WriteString("    @Override\n")
	if kind == extract.KindPredicate {
		b.WriteString("    public boolean matches(CamelContext context, Exchange exchange, Message message, Object body) throws Exception {\n")
	} else {
		b.WriteString("    public Object evaluate(CamelContext context, Exchange exchange, Message message, Object body) throws Exception {\n")
	}
	fmt.Fprintf(&b, "        return %s;\n", expr)
	b.WriteString("    }\n")
	b.WriteString("\n}\n")
	return b.String()
}

// splitFQN cuts a fully qualified name into package and class name. Names
// without a dot live in the default package.
func splitFQN(fqn string) (pkg, class string) {
	i := strings.LastIndexByte(fqn, '.')
	if i < 0 {
		return "", fqn
	}
	return fqn[:i], fqn[i+1:]
}

// javaQuote renders s as a Java double-quoted string literal.
func javaQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

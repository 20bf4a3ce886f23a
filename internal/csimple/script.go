package csimple

import (
	"fmt"
	"regexp"
	"strings"
)

// partKind distinguishes literal script text from ${...} placeholders.
type partKind int

const (
	partLiteral partKind = iota
	partPlaceholder
)

// scriptPart is one segment of a split script: either literal text or the
// body of a placeholder with the ${ } delimiters removed.
type scriptPart struct {
	kind partKind
	text string
}

// splitScript cuts a script into literal runs and placeholder bodies.
// Unterminated and empty placeholders are compile errors.
func splitScript(script string) ([]scriptPart, error) {
	var parts []scriptPart
	for i := 0; i < len(script); {
		rel := strings.Index(script[i:], "${")
		if rel < 0 {
			parts = append(parts, scriptPart{partLiteral, script[i:]})
			break
		}
		start := i + rel
		if start > i {
			parts = append(parts, scriptPart{partLiteral, script[i:start]})
		}
		depth := 1
		j := start + 2
		for ; j < len(script) && depth > 0; j++ {
			switch script[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		if depth != 0 {
			return nil, fmt.Errorf("unterminated placeholder at position %d", start)
		}
		body := strings.TrimSpace(script[start+2 : j-1])
		if body == "" {
			return nil, fmt.Errorf("empty placeholder at position %d", start)
		}
		parts = append(parts, scriptPart{partPlaceholder, body})
		i = j
	}
	return parts, nil
}

// topLevelIndex returns the first index where token occurs outside quoted
// text and outside ${...} placeholders, or -1.
func topLevelIndex(s, token string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			depth++
			i++
		case depth > 0 && c == '}':
			depth--
		case depth == 0 && strings.HasPrefix(s[i:], token):
			return i
		}
	}
	return -1
}

var numberLiteral = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// compilePlaceholder translates one placeholder body into the Java
// expression evaluated against the entry point parameters.
func compilePlaceholder(body string) (string, error) {
	switch body {
	case "body":
		return "body", nil
	case "exchange":
		return "exchange", nil
	case "exchangeId":
		return "exchange.getExchangeId()", nil
	case "id":
		return "message.getMessageId()", nil
	case "messageTimestamp":
		return "message.getMessageTimestamp()", nil
	case "camelContext":
		return "context", nil
	case "routeId":
		return "exchange.getFromRouteId()", nil
	case "threadName":
		return "Thread.currentThread().getName()", nil
	case "null":
		return "null", nil
	}

	if name, ok := namedAccess(body, "header"); ok {
		return "header(message, " + javaQuote(name) + ")", nil
	}
	if name, ok := namedAccess(body, "exchangeProperty"); ok {
		return "exchangeProperty(exchange, " + javaQuote(name) + ")", nil
	}
	if name, ok := namedAccess(body, "variable"); ok {
		return "variable(exchange, " + javaQuote(name) + ")", nil
	}
	if name, ok := strings.CutPrefix(body, "sys."); ok && name != "" {
		return "System.getProperty(" + javaQuote(name) + ")", nil
	}
	if name, ok := strings.CutPrefix(body, "env."); ok && name != "" {
		return "System.getenv(" + javaQuote(name) + ")", nil
	}

	if expr, ok, err := typedCall(body); ok || err != nil {
		return expr, err
	}

	return "", fmt.Errorf("unknown csimple function %q", body)
}

// namedAccess parses the two spellings of named access: prefix.NAME and
// prefix[NAME], where the bracketed name may be quoted.
func namedAccess(body, prefix string) (string, bool) {
	if name, ok := strings.CutPrefix(body, prefix+"."); ok && name != "" {
		return name, true
	}
	if rest, ok := strings.CutPrefix(body, prefix+"["); ok && strings.HasSuffix(rest, "]") {
		name := trimQuotes(strings.TrimSpace(rest[:len(rest)-1]))
		if name != "" {
			return name, true
		}
	}
	return "", false
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// typedCall parses the typed accessor functions, optionally followed by a
// method chain evaluated on the converted result, e.g.
// bodyAs(String).toUpperCase().
func typedCall(body string) (string, bool, error) {
	for _, fn := range []string{"mandatoryBodyAs", "bodyAs", "headerAs", "exchangePropertyAs"} {
		rest, ok := strings.CutPrefix(body, fn+"(")
		if !ok {
			continue
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return "", true, fmt.Errorf("missing closing parenthesis in %q", body)
		}
		chain := rest[end+1:]
		if chain != "" && !strings.HasPrefix(chain, ".") {
			return "", true, fmt.Errorf("malformed function call %q", body)
		}
		expr, err := renderTypedCall(fn, splitArgs(rest[:end]))
		if err != nil {
			return "", true, err
		}
		return expr + chain, true, nil
	}
	return "", false, nil
}

func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	args := make([]string, 0, len(raw))
	for _, arg := range raw {
		args = append(args, strings.TrimSpace(arg))
	}
	return args
}

func renderTypedCall(fn string, args []string) (string, error) {
	switch fn {
	case "bodyAs", "mandatoryBodyAs":
		if len(args) != 1 {
			return "", fmt.Errorf("%s expects one type argument", fn)
		}
		return fmt.Sprintf("%s(message, %s)", fn, classLiteral(args[0])), nil
	case "headerAs":
		if len(args) != 2 {
			return "", fmt.Errorf("headerAs expects a name and a type")
		}
		return fmt.Sprintf("headerAs(message, %s, %s)", javaQuote(trimQuotes(args[0])), classLiteral(args[1])), nil
	case "exchangePropertyAs":
		if len(args) != 2 {
			return "", fmt.Errorf("exchangePropertyAs expects a name and a type")
		}
		return fmt.Sprintf("exchangePropertyAs(exchange, %s, %s)", javaQuote(trimQuotes(args[0])), classLiteral(args[1])), nil
	}
	return "", fmt.Errorf("unknown function %s", fn)
}

// classLiteral renders a type argument as a Java class literal, tolerating
// an explicit .class suffix in the script.
func classLiteral(arg string) string {
	return strings.TrimSuffix(arg, ".class") + ".class"
}

// compileValue translates a value script into a Java expression producing
// the script result. A script that is a single placeholder compiles to its
// accessor; a script without placeholders compiles to a string constant;
// anything mixed compiles to a string concatenation.
func compileValue(script string) (string, error) {
	parts, err := splitScript(script)
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		if parts[0].kind == partPlaceholder {
			return compilePlaceholder(parts[0].text)
		}
		return javaQuote(parts[0].text), nil
	}
	exprs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.kind == partLiteral {
			exprs = append(exprs, javaQuote(part.text))
			continue
		}
		expr, err := compilePlaceholder(part.text)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, "String.valueOf("+expr+")")
	}
	return strings.Join(exprs, " + "), nil
}

// binaryOps are the predicate operators in matching priority: word operators
// before symbols, longer symbols before their prefixes.
var binaryOps = []struct {
	token  string
	helper string
	negate bool
}{
	{" not contains ", "contains", true},
	{" contains ", "contains", false},
	{" startsWith ", "startsWith", false},
	{" endsWith ", "endsWith", false},
	{" regex ", "regexp", false},
	{"==", "isEqualTo", false},
	{"!=", "isNotEqualTo", false},
	{">=", "isGreaterThanOrEqualTo", false},
	{"<=", "isLessThanOrEqualTo", false},
	{">", "isGreaterThan", false},
	{"<", "isLessThan", false},
}

// compilePredicate translates a predicate script into a Java boolean
// expression. Scripts may chain comparisons with && and ||.
func compilePredicate(script string) (string, error) {
	atoms, connectors, err := splitConnectors(script)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, atom := range atoms {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(connectors[i-1])
			b.WriteString(" ")
		}
		expr, err := compileAtom(atom)
		if err != nil {
			return "", err
		}
		b.WriteString(expr)
	}
	return b.String(), nil
}

// splitConnectors cuts a predicate script at the top-level && and ||
// connectors, preserving their order.
func splitConnectors(script string) (atoms, connectors []string, err error) {
	rest := script
	for {
		iAnd := topLevelIndex(rest, "&&")
		iOr := topLevelIndex(rest, "||")

		var i int
		var token string
		switch {
		case iAnd >= 0 && (iOr < 0 || iAnd < iOr):
			i, token = iAnd, "&&"
		case iOr >= 0:
			i, token = iOr, "||"
		default:
			atom := strings.TrimSpace(rest)
			if atom == "" {
				return nil, nil, fmt.Errorf("missing expression at end of predicate")
			}
			atoms = append(atoms, atom)
			return atoms, connectors, nil
		}

		atom := strings.TrimSpace(rest[:i])
		if atom == "" {
			return nil, nil, fmt.Errorf("missing expression before %s", token)
		}
		atoms = append(atoms, atom)
		connectors = append(connectors, token)
		rest = rest[i+2:]
	}
}

// compileAtom compiles one comparison or bare truth test.
func compileAtom(atom string) (string, error) {
	for _, op := range binaryOps {
		i := topLevelIndex(atom, op.token)
		if i < 0 {
			continue
		}
		left, err := compileOperand(atom[:i])
		if err != nil {
			return "", err
		}
		right, err := compileOperand(atom[i+len(op.token):])
		if err != nil {
			return "", err
		}
		expr := fmt.Sprintf("%s(exchange, %s, %s)", op.helper, left, right)
		if op.negate {
			expr = "!" + expr
		}
		return expr, nil
	}

	if atom == "true" || atom == "false" {
		return atom, nil
	}
	parts, err := splitScript(atom)
	if err != nil {
		return "", err
	}
	if len(parts) == 1 && parts[0].kind == partPlaceholder {
		expr, err := compilePlaceholder(parts[0].text)
		if err != nil {
			return "", err
		}
		return "isTrue(exchange, " + expr + ")", nil
	}
	return "", fmt.Errorf("cannot compile predicate %q", atom)
}

// compileOperand compiles one side of a comparison: a placeholder, a quoted
// string, a number, a boolean, null, or a concatenation of those.
func compileOperand(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("missing operand")
	}
	parts, err := splitScript(text)
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		if parts[0].kind == partPlaceholder {
			return compilePlaceholder(parts[0].text)
		}
		return literalOperand(parts[0].text)
	}
	return compileValue(text)
}

func literalOperand(text string) (string, error) {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return javaQuote(text[1 : len(text)-1]), nil
		}
	}
	if numberLiteral.MatchString(text) || text == "true" || text == "false" || text == "null" {
		return text, nil
	}
	return "", fmt.Errorf("invalid operand %q", text)
}

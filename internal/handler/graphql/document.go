package graphql

import "strings"

// operation is one executable definition found in a query document.
type operation struct {
	kind       string // query, mutation or subscription
	name       string
	rootFields []string
}

// document is a lightweight lexical view of a GraphQL query: enough to
// tell operation kinds and root fields apart without executing anything.
// Comments, strings and arguments are skipped, so text inside them can
// never be mistaken for a keyword.
type document struct {
	operations []operation
	malformed  bool
}

type tokenKind int

const (
	tokName tokenKind = iota
	tokPunct
	tokValue
)

type token struct {
	kind tokenKind
	text string
}

func parseDocument(src string) document {
	toks, ok := tokenize(src)
	if !ok {
		return document{malformed: true}
	}

	var (
		doc        document
		cur        *operation
		inFragment bool
		braces     int
		parens     int
	)
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.kind == tokPunct && t.text == "(":
			parens++
		case t.kind == tokPunct && t.text == ")":
			parens--
		case parens > 0:
			// arguments and variable definitions, input objects included
		case t.kind == tokPunct && t.text == "{":
			if braces == 0 && cur == nil && !inFragment {
				doc.operations = append(doc.operations, operation{kind: "query"})
				cur = &doc.operations[len(doc.operations)-1]
			}
			braces++
		case t.kind == tokPunct && t.text == "}":
			braces--
			if braces == 0 {
				cur, inFragment = nil, false
			}
		case braces == 0 && t.kind == tokName:
			switch t.text {
			case "query", "mutation", "subscription":
				if cur != nil || inFragment {
					doc.malformed = true
					return doc
				}
				doc.operations = append(doc.operations, operation{kind: t.text})
				cur = &doc.operations[len(doc.operations)-1]
				if i+1 < len(toks) && toks[i+1].kind == tokName {
					cur.name = toks[i+1].text
					i++
				}
			case "fragment":
				inFragment = true
			}
		case braces == 1 && cur != nil && t.kind == tokName:
			if field, skip := rootField(toks, i); field != "" {
				cur.rootFields = append(cur.rootFields, field)
				i += skip
			}
		}
		if braces < 0 || parens < 0 {
			doc.malformed = true
			return doc
		}
	}
	if braces != 0 || parens != 0 {
		doc.malformed = true
	}
	return doc
}

// rootField resolves the field selected at toks[i], following an alias.
// It returns "" for names that are not field selections.
func rootField(toks []token, i int) (string, int) {
	if i > 0 && toks[i-1].kind == tokPunct && (toks[i-1].text == "@" || toks[i-1].text == "...") {
		return "", 0
	}
	if i > 0 && toks[i-1].kind == tokName && toks[i-1].text == "on" {
		return "", 0
	}
	if i > 0 && toks[i-1].kind == tokPunct && toks[i-1].text == ":" {
		return "", 0
	}
	if i+2 < len(toks) && toks[i+1].text == ":" && toks[i+2].kind == tokName {
		return toks[i+2].text, 2
	}
	return toks[i].text, 0
}

// hasWrite reports whether any operation could change data.
func (d document) hasWrite() bool {
	for _, op := range d.operations {
		if op.kind != "query" {
			return true
		}
	}
	return false
}

// selected picks the operation Exec will run for operationName.
func (d document) selected(operationName string) (operation, bool) {
	if operationName == "" {
		if len(d.operations) == 1 {
			return d.operations[0], true
		}
		return operation{}, false
	}
	for _, op := range d.operations {
		if op.name == operationName {
			return op, true
		}
	}
	return operation{}, false
}

// Metric labels beyond the schema's own root fields.
const (
	labelMultiple      = "multiple"
	labelIntrospection = "introspection"
	labelOther         = "other"
)

var rootFieldLabels = map[string]bool{
	"articles":      true,
	"articlesPage":  true,
	"article":       true,
	"createArticle": true,
	"updateArticle": true,
	"deleteArticle": true,
}

// metricLabel names an operation by the root field it runs. The result is
// drawn from a fixed set whatever the client sends.
func (d document) metricLabel(operationName string) string {
	op, ok := d.selected(operationName)
	if d.malformed || !ok || len(op.rootFields) == 0 {
		return labelOther
	}

	label := ""
	for _, f := range op.rootFields {
		switch {
		case strings.HasPrefix(f, "__"):
			f = labelIntrospection
		case !rootFieldLabels[f]:
			return labelOther
		}
		if label != "" && label != f {
			return labelMultiple
		}
		label = f
	}
	return label
}

func tokenize(src string) ([]token, bool) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' && src[i] != '\r' {
				i++
			}
		case strings.HasPrefix(src[i:], `"""`):
			end := blockStringEnd(src, i+3)
			if end < 0 {
				return nil, false
			}
			toks = append(toks, token{kind: tokValue})
			i = end
		case c == '"':
			end := stringEnd(src, i+1)
			if end < 0 {
				return nil, false
			}
			toks = append(toks, token{kind: tokValue})
			i = end
		case strings.HasPrefix(src[i:], "..."):
			toks = append(toks, token{kind: tokPunct, text: "..."})
			i += 3
		case strings.IndexByte("{}()[]:=@$!|&", c) >= 0:
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++
		case c == '_' || isLetter(c):
			j := i + 1
			for j < len(src) && (src[j] == '_' || isLetter(src[j]) || isDigit(src[j])) {
				j++
			}
			toks = append(toks, token{kind: tokName, text: src[i:j]})
			i = j
		case c == '-' || isDigit(c):
			j := i + 1
			for j < len(src) && (isDigit(src[j]) || strings.IndexByte(".eE+-", src[j]) >= 0) {
				j++
			}
			toks = append(toks, token{kind: tokValue})
			i = j
		case strings.HasPrefix(src[i:], "\uFEFF"):
			i += len("\uFEFF")
		default:
			return nil, false
		}
	}
	return toks, true
}

func stringEnd(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		case '\n', '\r':
			return -1
		default:
			i++
		}
	}
	return -1
}

func blockStringEnd(src string, i int) int {
	for i < len(src) {
		if strings.HasPrefix(src[i:], `\"""`) {
			i += 4
			continue
		}
		if strings.HasPrefix(src[i:], `"""`) {
			return i + 3
		}
		i++
	}
	return -1
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

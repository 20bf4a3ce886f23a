package extract

import (
	"context"
	"strings"

	"github.com/beevik/etree"
)

// XMLExtractor finds csimple expressions in declarative XML route documents.
// Sites found here have no owning Java type; the compiler assigns them a
// synthetic one.
type XMLExtractor struct{}

// NewXMLExtractor creates an extractor for the XML dialect.
func NewXMLExtractor() *XMLExtractor {
	return &XMLExtractor{}
}

// Extract parses one XML document and returns its csimple sites in document
// order. A document that does not parse yields a ParseError the caller is
// expected to recover from.
func (e *XMLExtractor) Extract(ctx context.Context, path string) ([]Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	var sites []Site
	for _, el := range doc.ChildElements() {
		collectElements(el, path, &sites)
	}
	return sites, nil
}

func collectElements(el *etree.Element, path string, sites *[]Site) {
	if isCSimpleElement(el) {
		if script := strings.TrimSpace(el.Text()); script != "" {
			kind := KindValue
			if parent := el.Parent(); parent != nil && predicateParents[parent.Tag] {
				kind = KindPredicate
			}
			*sites = append(*sites, Site{
				Script:  script,
				Kind:    kind,
				File:    path,
				Dialect: DialectXML,
			})
		}
	}
	for _, child := range el.ChildElements() {
		collectElements(child, path, sites)
	}
}

// isCSimpleElement matches the dedicated <csimple> element as well as the
// generic expression elements that select the language by attribute.
func isCSimpleElement(el *etree.Element) bool {
	switch el.Tag {
	case "csimple":
		return true
	case "expression", "language":
		return el.SelectAttrValue("language", "") == "csimple"
	}
	return false
}

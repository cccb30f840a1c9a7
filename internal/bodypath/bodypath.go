// Package bodypath extracts values from request and response bodies by
// JSONPath (JSON trees) or XPath (XML documents).
package bodypath

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ohler55/ojg/jp"
)

// ErrNotXML is returned when an XPath is applied to a body that is not an XML document.
var ErrNotXML = errors.New("body is not an XML document")

// IsXPath reports whether path addresses an XML body. JSONPath expressions
// start with '$'; XPath expressions start with '/'.
func IsXPath(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Validate checks a path expression at load time.
func Validate(path string) error {
	if path == "" {
		return errors.New("path is required")
	}
	if IsXPath(path) {
		elemPath, _ := splitAttr(path)
		if _, err := etree.CompilePath(elemPath); err != nil {
			return fmt.Errorf("invalid XPath expression %q: %w", path, err)
		}
		return nil
	}
	if _, err := jp.ParseString(path); err != nil {
		return fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
	}
	return nil
}

// Extract returns every value addressed by path in body.
//
// For JSONPath, body may be a decoded tree (maps, slices, scalars), a JSON
// string or JSON bytes. For XPath, body must be an XML string or bytes and
// the values are the trimmed element texts (or attribute values for paths
// ending in /@attr).
func Extract(body any, path string) ([]any, error) {
	if IsXPath(path) {
		doc, err := xmlDocument(body)
		if err != nil {
			return nil, err
		}
		texts, err := XML(doc, path)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(texts))
		for i, s := range texts {
			out[i] = s
		}
		return out, nil
	}
	return JSON(body, path)
}

// JSON evaluates a JSONPath expression against body.
func JSON(body any, path string) ([]any, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
	}
	data, err := jsonTree(body)
	if err != nil {
		return nil, err
	}
	return expr.Get(data), nil
}

// XML evaluates an XPath expression against doc.
func XML(doc *etree.Document, path string) ([]string, error) {
	elemPath, attr := splitAttr(path)
	compiled, err := etree.CompilePath(elemPath)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression %q: %w", path, err)
	}

	var out []string
	for _, el := range doc.FindElementsPath(compiled) {
		if attr != "" {
			if a := el.SelectAttr(attr); a != nil {
				out = append(out, a.Value)
			}
			continue
		}
		out = append(out, strings.TrimSpace(el.Text()))
	}
	return out, nil
}

// splitAttr splits "/a/b/@id" into "/a/b" and "id".
func splitAttr(path string) (string, string) {
	if i := strings.LastIndex(path, "/@"); i >= 0 {
		return path[:i], path[i+2:]
	}
	return path, ""
}

func jsonTree(body any) (any, error) {
	var raw []byte
	switch b := body.(type) {
	case []byte:
		raw = b
	case string:
		trimmed := strings.TrimSpace(b)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return b, nil
		}
		raw = []byte(trimmed)
	default:
		return body, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}
	return data, nil
}

func xmlDocument(body any) (*etree.Document, error) {
	doc := etree.NewDocument()
	switch b := body.(type) {
	case string:
		if err := doc.ReadFromString(b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotXML, err)
		}
	case []byte:
		if err := doc.ReadFromBytes(b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotXML, err)
		}
	default:
		return nil, ErrNotXML
	}
	if doc.Root() == nil {
		return nil, ErrNotXML
	}
	return doc, nil
}

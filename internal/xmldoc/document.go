// =============================================================================
// XML to XLSX Converter - XML Document Loader
// =============================================================================
//
// This module turns the raw bytes of one input document into an element tree.
// It is the only place that talks to the XML parser; the flattening engine and
// the sales extractor both start from the tree returned here.
//
// INPUT HANDLING:
//   - Empty or whitespace-only content is reported as ErrEmptyInput. Callers
//     treat it as "no rows", never as a failure of the batch.
//   - Malformed content is reported as a *ParseError carrying the file label
//     and, when the parser knows it, the line number.
//   - Documents declaring a non-UTF-8 encoding (e.g. windows-1252, latin1) are
//     decoded through golang.org/x/text before parsing.
//
// NOT HANDLED:
//   - Namespace resolution. Prefixed names are kept verbatim.
//   - Streaming. The whole document is held in memory.
//
// =============================================================================

package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyInput is returned for documents with no content besides whitespace.
var ErrEmptyInput = errors.New("empty input")

// ParseError describes a document that could not be parsed as XML.
type ParseError struct {
	// Source is the label of the document (usually its file name).
	Source string

	// Line is the 1-based line of the failure, or 0 when unknown.
	Line int

	// Message is the parser's description of the problem.
	Message string

	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	location := e.Source
	if location == "" {
		location = "document"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s (line %d): %s", location, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", location, e.Message)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapParseError converts a parser error into a *ParseError.
func wrapParseError(err error, source string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Source:  source,
			Line:    syntaxErr.Line,
			Message: syntaxErr.Msg,
			Err:     err,
		}
	}
	return &ParseError{
		Source:  source,
		Message: err.Error(),
		Err:     err,
	}
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads one XML document and returns its root element.
//
// PARAMETERS:
//   - data: The raw document bytes.
//   - source: A label used in error messages (usually the file name).
//
// RETURNS:
//   - The root element of the document.
//   - ErrEmptyInput if data holds only whitespace.
//   - A *ParseError if the document is malformed or has no root element.
func Parse(data []byte, source string) (*etree.Element, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, wrapParseError(err, source)
	}

	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Source: source, Message: "document has no root element"}
	}

	return root, nil
}

// charsetReader decodes documents whose XML declaration names a charset other
// than UTF-8. The standard decoder only calls it for such documents.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// =============================================================================
// TREE HELPERS
// =============================================================================

// Descendants returns every element below root, in document order.
// The root itself is not included.
func Descendants(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			out = append(out, child)
			walk(child)
		}
	}
	walk(root)
	return out
}

// Attributes returns the element's attributes in document order, leaving out
// namespace declarations.
func Attributes(el *etree.Element) []etree.Attr {
	attrs := make([]etree.Attr, 0, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// TextOf returns the trimmed text of the first child of el named tag, and
// whether such a child exists.
func TextOf(el *etree.Element, tag string) (string, bool) {
	child := el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return strings.TrimSpace(child.Text()), true
}

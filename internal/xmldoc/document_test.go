package xmldoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil, "a.xml")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Parse([]byte("  \r\n "), "a.xml")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParse_SyntaxErrorCarriesLine(t *testing.T) {
	doc := "<data>\n<rec>\n<id=1></rec>\n</data>"

	_, err := Parse([]byte(doc), "broken.xml")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.xml", parseErr.Source)
	assert.Equal(t, 3, parseErr.Line)
	assert.NotEmpty(t, parseErr.Message)
	assert.Contains(t, parseErr.Error(), "line 3")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestParse_NoRootElement(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0"?><!-- nothing here -->`), "c.xml")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "document has no root element", parseErr.Message)
}

func TestParseError_Message(t *testing.T) {
	assert.Equal(t, "parse error in document: boom", (&ParseError{Message: "boom"}).Error())
	assert.Equal(t, "parse error in x.xml (line 4): boom",
		(&ParseError{Source: "x.xml", Line: 4, Message: "boom"}).Error())
}

func TestParse_UnknownCharset(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0" encoding="no-such-charset"?><a/>`), "d.xml")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestDescendants(t *testing.T) {
	root, err := Parse([]byte(`<r><a><b/></a><c/></r>`), "")
	require.NoError(t, err)

	var tags []string
	for _, el := range Descendants(root) {
		tags = append(tags, el.Tag)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tags)
}

func TestAttributes_SkipsNamespaceDeclarations(t *testing.T) {
	root, err := Parse([]byte(`<r xmlns="urn:a" xmlns:p="urn:p" id="1" p:k="2"/>`), "")
	require.NoError(t, err)

	var keys []string
	for _, a := range Attributes(root) {
		keys = append(keys, a.FullKey())
	}
	assert.Equal(t, []string{"id", "p:k"}, keys)
}

func TestTextOf(t *testing.T) {
	root, err := Parse([]byte(`<r><name>  Bob </name><empty/></r>`), "")
	require.NoError(t, err)

	v, ok := TextOf(root, "name")
	assert.True(t, ok)
	assert.Equal(t, "Bob", v)

	v, ok = TextOf(root, "empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = TextOf(root, "missing")
	assert.False(t, ok)
}

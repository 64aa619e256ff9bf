// Package xmltest helps test generated XML documents
// by querying them with CSS selectors.
//
// Documents are parsed into [html.Node] trees
// so that they can be matched with cascadia.
// Namespace prefixes are dropped from element names,
// "xml:id" becomes "id", and other prefixed attributes
// keep only their local name ("xlink:href" becomes "href").
package xmltest

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Parse parses an XML document into a node tree.
// It fails the test if the document is not well-formed.
func Parse(t testing.TB, src string) *html.Node {
	t.Helper()

	root, err := parse(strings.NewReader(src))
	require.NoError(t, err, "parse XML:\n%s", src)
	return root
}

func parse(r io.Reader) (*html.Node, error) {
	root := &html.Node{Type: html.DocumentNode}
	cur := root

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			n := &html.Node{
				Type: html.ElementNode,
				Data: tok.Name.Local,
			}
			for _, attr := range tok.Attr {
				n.Attr = append(n.Attr, html.Attribute{
					Key: attr.Name.Local,
					Val: attr.Value,
				})
			}
			cur.AppendChild(n)
			cur = n

		case xml.EndElement:
			cur = cur.Parent

		case xml.CharData:
			cur.AppendChild(&html.Node{
				Type: html.TextNode,
				Data: string(tok),
			})
		}
	}
	return root, nil
}

// Query returns all nodes under root that match the selector.
func Query(t testing.TB, root *html.Node, selector string) []*html.Node {
	t.Helper()

	sel, err := cascadia.Compile(selector)
	require.NoError(t, err, "compile selector %q", selector)
	return cascadia.QueryAll(root, sel)
}

// QueryOne returns the only node under root that matches the selector.
// It fails the test if there isn't exactly one match.
func QueryOne(t testing.TB, root *html.Node, selector string) *html.Node {
	t.Helper()

	nodes := Query(t, root, selector)
	require.Len(t, nodes, 1, "expected one match for %q", selector)
	return nodes[0]
}

// Texts returns the text content of all nodes matching the selector.
func Texts(t testing.TB, root *html.Node, selector string) []string {
	t.Helper()

	var texts []string
	for _, n := range Query(t, root, selector) {
		texts = append(texts, Text(n))
	}
	return texts
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// Attr returns the value of the named attribute of n,
// or an empty string if it isn't set.
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

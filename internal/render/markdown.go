// Package render converts blog Markdown to HTML.
package render

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Heading is an entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Document is rendered Markdown with its heading outline.
type Document struct {
	HTML    string    `json:"html"`
	Outline []Heading `json:"outline"`
}

// Markdown renders text to HTML. Raw HTML in the source is dropped and
// links open in a new tab.
func Markdown(text string) Document {
	if strings.TrimSpace(text) == "" {
		return Document{Outline: []Heading{}}
	}

	// Parsers keep state, so each call gets its own.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(text))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})

	return Document{
		HTML:    string(markdown.Render(doc, renderer)),
		Outline: outline(doc),
	}
}

func outline(doc ast.Node) []Heading {
	headings := []Heading{}
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		h, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.GoToNext
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(plainText(h)),
			ID:    h.HeadingID,
		})
		return ast.SkipChildren
	})
	return headings
}

func plainText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := n.(type) {
		case *ast.Text:
			b.Write(leaf.Literal)
		case *ast.Code:
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package markup implements the small description AST AppStream's
// <description> element requires: a sequence of paragraphs and ordered/
// unordered lists, each made of inline text/emphasis/code spans. It parses
// the HTML-like markup found in metainfo XML and DEP-11 YAML into this AST
// and converts it back to plain text or Markdown; it never renders HTML.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Span is an inline run of text within a Block.
type Span struct {
	Text     string
	Emphasis bool
	Code     bool
}

// BlockKind distinguishes the three block types AppStream descriptions use.
type BlockKind int

const (
	Paragraph BlockKind = iota
	UnorderedList
	OrderedList
)

// Block is either a paragraph of Spans or a list of list-item Span runs.
type Block struct {
	Kind  BlockKind
	Spans []Span   // used when Kind == Paragraph
	Items [][]Span // used when Kind == UnorderedList or OrderedList
}

// Document is a parsed <description> body.
type Document struct {
	Blocks []Block
}

// ParseHTML parses the HTML-like markup AppStream descriptions use
// (<p>, <ul>/<ol><li>) into a Document. Unrecognized tags are ignored; their
// text content is preserved as part of the surrounding block.
func ParseHTML(s string) (*Document, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	doc := &Document{}

	var curSpans []Span
	var curItems [][]Span
	var listKind BlockKind
	inList := false
	inItem := false
	emphasis := false
	code := false

	flushParagraph := func() {
		if len(curSpans) > 0 {
			doc.Blocks = append(doc.Blocks, Block{Kind: Paragraph, Spans: curSpans})
			curSpans = nil
		}
	}

	flushList := func() {
		if inList {
			doc.Blocks = append(doc.Blocks, Block{Kind: listKind, Items: curItems})
			curItems = nil
			inList = false
		}
	}

	appendText := func(text string) {
		text = collapseWhitespace(text)
		if text == "" {
			return
		}

		span := Span{Text: text, Emphasis: emphasis, Code: code}
		if inItem {
			if len(curItems) == 0 {
				curItems = append(curItems, nil)
			}
			curItems[len(curItems)-1] = append(curItems[len(curItems)-1], span)
		} else {
			curSpans = append(curSpans, span)
		}
	}

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}

		tok := tokenizer.Token()

		switch tt {
		case html.TextToken:
			appendText(tok.Data)

		case html.StartTagToken, html.SelfClosingTagToken:
			switch tok.Data {
			case "p":
				flushParagraph()
			case "ul":
				flushList()
				listKind = UnorderedList
				inList = true
			case "ol":
				flushList()
				listKind = OrderedList
				inList = true
			case "li":
				curItems = append(curItems, nil)
				inItem = true
			case "em", "i":
				emphasis = true
			case "code":
				code = true
			}

		case html.EndTagToken:
			switch tok.Data {
			case "p":
				flushParagraph()
			case "ul", "ol":
				flushList()
			case "li":
				inItem = false
			case "em", "i":
				emphasis = false
			case "code":
				code = false
			}
		}
	}

	flushParagraph()
	flushList()

	return doc, nil
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// PlainText renders the document as unformatted text, paragraphs separated
// by blank lines and list items prefixed with "- " or "N. ".
func (d *Document) PlainText() string {
	var b strings.Builder

	for i, block := range d.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}

		switch block.Kind {
		case Paragraph:
			b.WriteString(joinSpansPlain(block.Spans))
		case UnorderedList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- ")
				b.WriteString(joinSpansPlain(item))
			}
		case OrderedList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				b.WriteString(itoa(j + 1))
				b.WriteString(". ")
				b.WriteString(joinSpansPlain(item))
			}
		}
	}

	return b.String()
}

// Markdown renders the document as Markdown: *emphasis*, `code`, "- " and
// "N. " list markers.
func (d *Document) Markdown() string {
	var b strings.Builder

	for i, block := range d.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}

		switch block.Kind {
		case Paragraph:
			b.WriteString(joinSpansMarkdown(block.Spans))
		case UnorderedList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- ")
				b.WriteString(joinSpansMarkdown(item))
			}
		case OrderedList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				b.WriteString(itoa(j + 1))
				b.WriteString(". ")
				b.WriteString(joinSpansMarkdown(item))
			}
		}
	}

	return b.String()
}

func joinSpansPlain(spans []Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

func joinSpansMarkdown(spans []Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		switch {
		case s.Code:
			parts[i] = "`" + s.Text + "`"
		case s.Emphasis:
			parts[i] = "*" + s.Text + "*"
		default:
			parts[i] = s.Text
		}
	}
	return strings.Join(parts, " ")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

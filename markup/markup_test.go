// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package markup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"appstreamkit.sh/markup"
)

func TestParseHTMLParagraphsAndLists(t *testing.T) {
	doc, err := markup.ParseHTML(`
		<p>This app does <em>great</em> things.</p>
		<p>Features:</p>
		<ul>
			<li>Fast</li>
			<li>Uses <code>zlib</code></li>
		</ul>
	`)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)

	require.Equal(t, markup.Paragraph, doc.Blocks[0].Kind)
	require.Equal(t, markup.UnorderedList, doc.Blocks[2].Kind)
	require.Len(t, doc.Blocks[2].Items, 2)
}

func TestPlainTextAndMarkdown(t *testing.T) {
	doc, err := markup.ParseHTML(`<p>Hello <em>world</em></p><ul><li>one</li><li>two</li></ul>`)
	require.NoError(t, err)

	require.Contains(t, doc.PlainText(), "Hello world")
	require.Contains(t, doc.PlainText(), "- one")

	md := doc.Markdown()
	require.Contains(t, md, "*world*")
	require.Contains(t, md, "- one")
}

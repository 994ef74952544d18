// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
)

const dep11Sample = `File: DEP-11
Version: "1.0"
Origin: flathub
Priority: 10
---
Type: desktop-application
ID: org.example.Foo
Name:
  C: Foo
  de: Füu
Summary:
  C: Does foo things
Description:
  C: "<p>Foo does many things.</p>"
Categories:
  - Utility
Icon:
  stock: accessories-foo
Bundles:
  - type: flatpak
    id: org.example.Foo
`

func TestDecodeDep11Stream(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	header, comps, report, err := Decode([]byte(dep11Sample), ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "flathub", header.Origin)
	require.Len(t, comps, 1)

	c := comps[0]
	assert.Equal(t, "org.example.Foo", c.ID)
	assert.Equal(t, "flathub", c.Origin)
	assert.Equal(t, 10, c.Priority)

	name, ok := c.Name.Get("C")
	require.True(t, ok)
	assert.Equal(t, "Foo", name)

	desc, ok := c.Description.Get("C")
	require.True(t, ok)
	assert.Contains(t, desc.PlainText(), "Foo does many things")

	assert.Equal(t, "org.example.Foo", c.Bundles[component.BundleFlatpak])
}

func TestDecodeGzipTransparent(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(dep11Sample))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	_, comps, _, err := Decode(buf.Bytes(), ctx)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "org.example.Foo", comps[0].ID)
}

func TestEncodeRoundTrip(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	header, comps, _, err := Decode([]byte(dep11Sample), ctx)
	require.NoError(t, err)

	out, err := Encode(header, comps, ctx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "DEP-11")
	assert.Contains(t, string(out), "org.example.Foo")
}

func TestDecodeMalformedYAML(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	_, _, _, err = Decode([]byte("File: [unterminated"), ctx)
	require.Error(t, err)
}

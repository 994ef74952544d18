// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package xml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
)

const metainfoSample = `<?xml version="1.0" encoding="UTF-8"?>
<component type="desktop-application">
  <id>org.example.Foo</id>
  <metadata_license>CC0-1.0</metadata_license>
  <project_license>GPL-3.0-or-later</project_license>
  <name>Foo</name>
  <name xml:lang="de">Füu</name>
  <summary>Does foo things</summary>
  <description>
    <p xml:lang="C">Foo does many things.</p>
    <p xml:lang="de">Füu macht viele Dinge.</p>
  </description>
  <icon type="stock">accessories-foo</icon>
  <url type="homepage">https://example.org/foo</url>
  <provides>
    <binary>foo</binary>
  </provides>
  <launchable type="desktop-id">org.example.Foo.desktop</launchable>
  <releases>
    <release version="1.2" date="2024-01-01">
      <description><p>Bug fixes.</p></description>
    </release>
  </releases>
</component>
`

const catalogSample = `<?xml version="1.0" encoding="UTF-8"?>
<components version="1.0" origin="testsuite">
  <component type="desktop-application">
    <id>org.example.Bar</id>
    <name>Bar</name>
    <summary>Bar summary</summary>
  </component>
</components>
`

func TestParseMetainfoComponent(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	comps, report, err := Parse([]byte(metainfoSample), ctx)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Empty(t, report.UnknownElements)

	c := comps[0]
	assert.Equal(t, "org.example.Foo", c.ID)
	assert.Equal(t, component.KindDesktopApp, c.Kind)

	name, ok := c.Name.Get("C")
	require.True(t, ok)
	assert.Equal(t, "Foo", name)

	desc, ok := c.Description.Get("C")
	require.True(t, ok)
	assert.Contains(t, desc.PlainText(), "Foo does many things")

	assert.Equal(t, "https://example.org/foo", c.URLs[component.URLHomepage])
	assert.True(t, c.Provided[component.ProvidedBinary].Has("foo"))
	assert.Equal(t, []string{"org.example.Foo.desktop"}, c.Launchables[component.LaunchableDesktopID])

	require.NotNil(t, c.Releases)
	require.Len(t, c.Releases.Entries, 1)
	assert.Equal(t, "1.2", c.Releases.Entries[0].Version)
}

func TestParseCatalogComponents(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	comps, _, err := Parse([]byte(catalogSample), ctx)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "testsuite", comps[0].Origin)
}

func TestParseMalformedXML(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	_, _, err = Parse([]byte("<component><id>unterminated"), ctx)
	require.Error(t, err)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestEmitRoundTrip(t *testing.T) {
	ctx, err := appstreamctx.New()
	require.NoError(t, err)

	comps, _, err := Parse([]byte(metainfoSample), ctx)
	require.NoError(t, err)

	out, err := Emit(comps, ctx)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "org.example.Foo"))
	assert.True(t, strings.Contains(string(out), "<name>Foo</name>"))
}

func TestEmitCatalogStyle(t *testing.T) {
	ctx, err := appstreamctx.New(appstreamctx.WithFormatStyle(appstreamctx.Catalog), appstreamctx.WithOrigin("testsuite"))
	require.NoError(t, err)

	comps, _, err := Parse([]byte(catalogSample), ctx)
	require.NoError(t, err)

	out, err := Emit(comps, ctx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<components")
	assert.Contains(t, string(out), `origin="testsuite"`)
}

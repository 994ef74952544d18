// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package newsconvert

import (
	"strings"
	"testing"

	"appstreamkit.sh/component"
	"appstreamkit.sh/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNEWS = `Version 1.2.0
~~~~~~~~~~~~~
Released: 2024-03-15

Notes:
This release focuses on stability.

Bugfixes:
- Fix crash on startup
- Fix memory leak in the parser

Features:
- Add dark mode support

Translations:
Updated German and French translations.

Version 1.1.0
~~~~~~~~~~~~~
Released: 2024-01-02

Miscellaneous:
- Bump minimum supported Go version
`

func TestParseNEWSTwoReleases(t *testing.T) {
	releases, err := ParseNEWS(strings.NewReader(sampleNEWS))
	require.NoError(t, err)
	require.Len(t, releases, 2)

	assert.Equal(t, "1.2.0", releases[0].Version)
	assert.Equal(t, component.ReleaseStable, releases[0].Kind)
	assert.Equal(t, "2024-03-15", releases[0].Date)

	assert.Equal(t, "1.1.0", releases[1].Version)
	assert.Equal(t, "2024-01-02", releases[1].Date)
}

func TestParseNEWSDescriptionHasBugfixList(t *testing.T) {
	releases, err := ParseNEWS(strings.NewReader(sampleNEWS))
	require.NoError(t, err)

	doc, ok := releases[0].Description["C"]
	require.True(t, ok)

	var found bool
	for _, block := range doc.Blocks {
		if block.Kind == markup.UnorderedList {
			for _, item := range block.Items {
				if len(item) == 1 && strings.Contains(item[0].Text, "crash on startup") {
					found = true
				}
			}
		}
	}
	assert.True(t, found, "expected a list item mentioning the startup crash fix")
}

func TestParseNEWSDevelopmentSnapshot(t *testing.T) {
	const devNews = `Version 2.0.0-beta
~~~~~~~~~~~~~~~~~~
Released: 2024-xx-xx

Notes:
Unreleased development snapshot.
`
	releases, err := ParseNEWS(strings.NewReader(devNews))
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, component.ReleaseDevel, releases[0].Kind)
}

func TestParseNEWSEmptyInput(t *testing.T) {
	_, err := ParseNEWS(strings.NewReader("   \n\n  "))
	assert.Error(t, err)
}

func TestParseNEWSUnrecognizedSectionErrors(t *testing.T) {
	const badNews = `Version 1.0.0
~~~~~~~~~~~~~
Released: 2024-01-01

This paragraph matches no known section label and has no bullet markers either so it cannot be classified.
`
	_, err := ParseNEWS(strings.NewReader(badNews))
	assert.Error(t, err)
}

func TestParseNEWSMissingVersionLineErrors(t *testing.T) {
	const badNews = `~~~~~~~~~~~~~
Released: 2024-01-01

Notes:
Something happened.
`
	_, err := ParseNEWS(strings.NewReader(badNews))
	assert.Error(t, err)
}

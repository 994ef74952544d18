// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"appstreamkit.sh/locale"
)

func TestStrip(t *testing.T) {
	cases := map[string]string{
		"de_DE":      "de",
		"de_DE.UTF-8@euro": "de",
		"zh_Hans_CN": "zh",
		"pt-BR":      "pt",
		"C":          "C",
		"en":         "en",
	}

	for in, want := range cases {
		got := locale.Strip(in)
		require.Equal(t, want, got, "Strip(%q)", in)
	}
}

func TestIsDiscardable(t *testing.T) {
	require.True(t, locale.IsDiscardable("x-test"))
	require.True(t, locale.IsDiscardable("xx"))
	require.True(t, locale.IsDiscardable(""))
	require.False(t, locale.IsDiscardable("de_DE"))
}

func TestResolveFallbackChain(t *testing.T) {
	table := map[string]string{
		"C":     "Hello",
		"de":    "Hallo",
		"de_AT": "Servus",
	}

	v, ok := locale.Resolve(table, "de_AT")
	require.True(t, ok)
	require.Equal(t, "Servus", v)

	v, ok = locale.Resolve(table, "de_DE")
	require.True(t, ok)
	require.Equal(t, "Hallo", v)

	v, ok = locale.Resolve(table, "fr_FR")
	require.True(t, ok)
	require.Equal(t, "Hello", v)

	_, ok = locale.Resolve(map[string]string{}, "fr_FR")
	require.False(t, ok)
}

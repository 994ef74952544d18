// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package compareversion_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"appstreamkit.sh/compareversion"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.9", "1.10", -1},
		{"1.0-1", "1.0-2", -1},
		{"1.2.3-4.fc39", "1.2.3-4.fc39", 0},
		{"1.0~rc1", "1.0", -1},
		{"1.0", "1.0~rc1", 1},
		{"1.0a", "1.0", -1},
		{"1.0", "1.0a", 1},
		{"01.0", "1.0", 0},
	}

	for _, c := range cases {
		got := compareversion.Compare(c.a, c.b)
		require.Equal(t, c.want, got, "Compare(%q, %q)", c.a, c.b)
	}
}

func TestEqualAndLessThan(t *testing.T) {
	require.True(t, compareversion.Equal("1.0", "1.0"))
	require.True(t, compareversion.LessThan("1.0", "1.1"))
	require.False(t, compareversion.LessThan("1.1", "1.0"))
}

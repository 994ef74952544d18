// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTripletFourComponent(t *testing.T) {
	assert.True(t, ValidTriplet("x86_64-pc-linux-gnu"))
}

func TestValidTripletArchOSABI(t *testing.T) {
	assert.True(t, ValidTriplet("aarch64-linux-musl"))
}

func TestValidTripletArchVendorOS(t *testing.T) {
	assert.True(t, ValidTriplet("arm-unknown-linux"))
}

func TestValidTripletTwoComponent(t *testing.T) {
	assert.True(t, ValidTriplet("noarch-linux"))
}

func TestInvalidTripletUnknownArch(t *testing.T) {
	assert.False(t, ValidTriplet("vax-linux-gnu"))
}

func TestInvalidTripletUnknownOS(t *testing.T) {
	assert.False(t, ValidTriplet("x86_64-pc-plan9-gnu"))
}

func TestInvalidTripletMalformed(t *testing.T) {
	assert.False(t, ValidTriplet("x86_64"))
	assert.False(t, ValidTriplet(""))
	assert.False(t, ValidTriplet("x86_64-pc-linux-gnu-extra"))
}

func TestParseRoundTrip(t *testing.T) {
	trip, ok := Parse("x86_64-pc-linux-gnu")
	require.True(t, ok)
	assert.Equal(t, "x86_64-pc-linux-gnu", trip.String())
}

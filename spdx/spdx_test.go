// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package spdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSimpleID(t *testing.T) {
	toks, err := Tokenize("Apache-2.0")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, TokenLicenseID, toks[0].Kind)
	assert.Equal(t, "Apache-2.0", toks[0].Value)
}

func TestTokenizeCompoundExpression(t *testing.T) {
	toks, err := Tokenize("MIT OR (Apache-2.0 AND GPL-3.0-or-later)")
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenLicenseID, TokenOperatorOR, TokenLParen,
		TokenLicenseID, TokenOperatorAND, TokenLicenseID, TokenRParen,
	}, kinds)
}

func TestTokenizeWithException(t *testing.T) {
	toks, err := Tokenize("GPL-2.0-only WITH Classpath-exception-2.0")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, TokenOperatorWITH, toks[1].Kind)
}

func TestTokenizeRejectsInvalidToken(t *testing.T) {
	_, err := Tokenize("MIT && Apache-2.0")
	require.Error(t, err)
}

func TestTokenizeRejectsEmpty(t *testing.T) {
	_, err := Tokenize("   ")
	require.Error(t, err)
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	assert.NoError(t, Validate("MIT OR Apache-2.0"))
	assert.NoError(t, Validate("(MIT OR Apache-2.0) AND BSD-3-Clause"))
}

func TestValidateRejectsUnbalancedParens(t *testing.T) {
	assert.Error(t, Validate("(MIT OR Apache-2.0"))
	assert.Error(t, Validate("MIT)"))
}

func TestValidateRejectsAdjacentOperands(t *testing.T) {
	assert.Error(t, Validate("MIT Apache-2.0"))
}

func TestValidateRejectsTrailingOperator(t *testing.T) {
	assert.Error(t, Validate("MIT AND"))
}

func TestValidateRejectsAdjacentOperators(t *testing.T) {
	assert.Error(t, Validate("MIT AND OR Apache-2.0"))
}

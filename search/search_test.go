// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appstreamkit.sh/component"
)

func TestTokenizeDropsShortAndGreylisted(t *testing.T) {
	greylist := DefaultGreylist()
	toks := Tokenize("The Foo Application Tool", "C", greylist)
	assert.Contains(t, toks, "foo")
	assert.NotContains(t, toks, "application")
	assert.NotContains(t, toks, "tool")
}

func TestTokenizeStemsAndDeduplicates(t *testing.T) {
	toks := Tokenize("running runs runner", "C", nil)
	assert.Contains(t, toks, "run")
	// "runner" does not stem to "run" under Porter2, so it survives distinct.
	assert.Contains(t, toks, "runner")
}

func TestTokenizeID(t *testing.T) {
	toks := TokenizeID("org.gnome.Calculator", nil)
	assert.Contains(t, toks, "gnome")
	assert.Contains(t, toks, "calcul")
}

func calculatorComponent() *component.Component {
	c := &component.Component{
		ID:      "org.gnome.Calculator",
		Kind:    component.KindDesktopApp,
		Name:    component.LocalizedString{"C": "Calculator"},
		Summary: component.LocalizedString{"C": "Perform arithmetic calculations"},
		Keywords: component.LocalizedStringList{"C": {"math", "arithmetic"}},
		Provided: component.Provided{},
		Launchables: component.Launchables{
			component.LaunchableDesktopID: {"org.gnome.Calculator.desktop"},
		},
	}
	c.Provided.Add(component.ProvidedBinary, "gnome-calculator")
	cs, err := component.NewCategorySet(nil, "Utility", "Math")
	if err != nil {
		panic(err)
	}
	c.Categories = cs
	return c
}

func TestQueryIDMatchOutranksSummary(t *testing.T) {
	c := calculatorComponent()
	idx := Build([]*component.Component{c}, "C", nil)

	results := Query(idx, "calculator", "C", nil)
	require.Len(t, results, 1)
	assert.Equal(t, c, results[0].Component)
	assert.True(t, results[0].Score >= WeightID)
}

func TestQueryKeywordMatch(t *testing.T) {
	c := calculatorComponent()
	idx := Build([]*component.Component{c}, "C", nil)

	results := Query(idx, "arithmetic", "C", nil)
	require.Len(t, results, 1)
	assert.Equal(t, c, results[0].Component)
}

func TestQueryNoMatchReturnsEmpty(t *testing.T) {
	c := calculatorComponent()
	idx := Build([]*component.Component{c}, "C", nil)

	results := Query(idx, "spreadsheet editor", "C", nil)
	assert.Empty(t, results)
}

func TestQueryOrderingTieBreakByID(t *testing.T) {
	a := calculatorComponent()
	a.ID = "org.example.Z"
	b := calculatorComponent()
	b.ID = "org.example.A"

	idx := Build([]*component.Component{a, b}, "C", nil)
	results := Query(idx, "calculator", "C", nil)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "org.example.A", results[0].Component.ID)
}

func TestFuzzyQueryFindsNearMiss(t *testing.T) {
	c := calculatorComponent()
	idx := Build([]*component.Component{c}, "C", nil)

	results := FuzzyQuery(idx, "calculater", "C", nil, WithFuzzyMatch(0.8))
	require.Len(t, results, 1)
	assert.Equal(t, c, results[0].Component)
}

func TestMonotoneScoreAddingKeyword(t *testing.T) {
	base := func() *component.Component {
		return &component.Component{
			ID:       "org.example.Foo",
			Kind:     component.KindGeneric,
			Name:     component.LocalizedString{"C": "Foo"},
			Summary:  component.LocalizedString{"C": "does foo things"},
			Provided: component.Provided{},
		}
	}

	without := base()
	with := base()
	with.Keywords = component.LocalizedStringList{"C": {"frobnicate"}}

	idxWithout := Build([]*component.Component{without}, "C", nil)
	idxWith := Build([]*component.Component{with}, "C", nil)

	scoreWithout := Query(idxWithout, "frobnicate", "C", nil)
	scoreWith := Query(idxWith, "frobnicate", "C", nil)

	assert.Empty(t, scoreWithout)
	assert.NotEmpty(t, scoreWith)
}

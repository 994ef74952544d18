// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appstreamkit.sh/component"
)

func genericComponent(id string, priority int) *component.Component {
	return &component.Component{
		ID:       id,
		Kind:     component.KindGeneric,
		Priority: priority,
		Name:     component.LocalizedString{"C": "Foo"},
		Bundles:  component.Bundles{},
		Provided: component.Provided{},
	}
}

func TestInsertNewDataID(t *testing.T) {
	p := New()
	c := genericComponent("org.example.Foo", 0)

	require.NoError(t, p.Insert(c))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, c, p.ByID("org.example.Foo")[0])
}

func TestInsertHigherPriorityReplaces(t *testing.T) {
	p := New()
	low := genericComponent("org.example.Foo", 0)
	high := genericComponent("org.example.Foo", 10)

	require.NoError(t, p.Insert(low))
	require.NoError(t, p.Insert(high))

	box := p.ByID("org.example.Foo")
	require.Len(t, box, 1)
	assert.Equal(t, 10, box[0].Priority)
}

func TestInsertLowerPriorityKeepsExisting(t *testing.T) {
	p := New()
	high := genericComponent("org.example.Foo", 10)
	low := genericComponent("org.example.Foo", 0)

	require.NoError(t, p.Insert(high))
	require.NoError(t, p.Insert(low))

	box := p.ByID("org.example.Foo")
	require.Len(t, box, 1)
	assert.Equal(t, 10, box[0].Priority)
}

func TestInsertEqualPriorityCollision(t *testing.T) {
	p := New()
	a := genericComponent("org.example.Foo", 5)
	b := genericComponent("org.example.Foo", 5)

	require.NoError(t, p.Insert(a))
	err := p.Insert(b)
	require.Error(t, err)

	var collErr *CollisionError
	require.ErrorAs(t, err, &collErr)
	assert.Equal(t, 5, collErr.Priority)
}

func TestInsertStubPatchByName(t *testing.T) {
	p := New()
	stub := &component.Component{ID: "org.example.Foo", Kind: component.KindGeneric, Priority: 5}
	full := genericComponent("org.example.Foo", 5)
	full.Summary = component.LocalizedString{"C": "Does foo things"}

	require.NoError(t, p.Insert(stub))
	require.NoError(t, p.Insert(full))

	box := p.ByID("org.example.Foo")
	require.Len(t, box, 1)
	name, ok := box[0].Name.Get("C")
	require.True(t, ok)
	assert.Equal(t, "Foo", name)
	summary, ok := box[0].Summary.Get("C")
	require.True(t, ok)
	assert.Equal(t, "Does foo things", summary)
}

func TestInsertArchPreferenceTiebreak(t *testing.T) {
	p := New(WithHostArchitecture("x86_64"))

	wrongArch := genericComponent("org.example.Foo", 5)
	wrongArch.Architecture = "arm64"
	rightArch := genericComponent("org.example.Foo", 5)
	rightArch.Architecture = "x86_64"

	require.NoError(t, p.Insert(wrongArch))
	require.NoError(t, p.Insert(rightArch))

	box := p.ByID("org.example.Foo")
	require.Len(t, box, 1)
	assert.Equal(t, "x86_64", box[0].Architecture)
}

func TestInsertRemoveMerge(t *testing.T) {
	p := New()
	c := genericComponent("org.example.Foo", 0)
	require.NoError(t, p.Insert(c))

	removal := genericComponent("org.example.Foo", 0)
	removal.Merge = component.MergeRemove
	require.NoError(t, p.Insert(removal))

	assert.Equal(t, 0, p.Len())
}

func TestInsertAppendMerge(t *testing.T) {
	p := New()
	existing := genericComponent("org.example.Foo", 0)
	existing.Keywords = component.LocalizedStringList{}
	existing.Keywords.Set("C", []string{"foo"})
	require.NoError(t, p.Insert(existing))

	patch := genericComponent("org.example.Foo", 0)
	patch.Merge = component.MergeAppend
	patch.Summary = component.LocalizedString{"C": "patched summary"}

	require.NoError(t, p.Insert(patch))

	box := p.ByID("org.example.Foo")
	require.Len(t, box, 1)
	summary, ok := box[0].Summary.Get("C")
	require.True(t, ok)
	assert.Equal(t, "patched summary", summary)
	kws, ok := box[0].Keywords.Get("C")
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, kws)
}

func TestRefineAddonsAndHidden(t *testing.T) {
	p := New()
	parent := genericComponent("org.example.Foo", 0)
	addon := genericComponent("org.example.Foo.Plugin", 0)
	addon.Extends = []string{"org.example.Foo"}

	invalid := &component.Component{ID: "org.example.Bad", Kind: component.KindDesktopApp, Priority: 0,
		Name: component.LocalizedString{"C": "Bad"}}

	require.NoError(t, p.Insert(parent))
	require.NoError(t, p.Insert(addon))
	require.NoError(t, p.Insert(invalid))

	p.Refine()

	got := p.ByID("org.example.Foo")[0]
	assert.Equal(t, []string{"org.example.Foo.Plugin"}, got.Addons)

	bad := p.ByID("org.example.Bad")[0]
	assert.True(t, bad.Hidden)
}

func TestQueryByCategoryGlob(t *testing.T) {
	p := New()
	c := genericComponent("org.example.Foo", 0)
	cs, err := component.NewCategorySet(nil, "AudioVideo", "Audio")
	require.NoError(t, err)
	c.Categories = cs
	require.NoError(t, p.Insert(c))

	box := p.ByCategory("Audio*")
	require.Len(t, box, 1)
	assert.Equal(t, "org.example.Foo", box[0].ID)
}

func TestQueryByBundleIDDoublestar(t *testing.T) {
	p := New()
	c := genericComponent("org.gnome.Calculator", 0)
	c.Bundles[component.BundleFlatpak] = "org.gnome.Calculator.Desktop"
	require.NoError(t, p.Insert(c))

	box := p.ByBundleID(component.BundleFlatpak, "org.gnome.**")
	require.Len(t, box, 1)
	assert.Equal(t, "org.gnome.Calculator", box[0].ID)

	assert.Empty(t, p.ByBundleID(component.BundleFlatpak, "org.kde.**"))
}

func TestQueryByProvided(t *testing.T) {
	p := New()
	c := genericComponent("org.example.Foo", 0)
	c.Provided.Add(component.ProvidedBinary, "foo-cli")
	require.NoError(t, p.Insert(c))

	box := p.ByProvided(component.ProvidedBinary, "foo-cli")
	require.Len(t, box, 1)
	assert.Equal(t, "org.example.Foo", box[0].ID)
}

func TestLoadSourceAsync(t *testing.T) {
	p := New()
	srcs := []Source{
		fakeSource{name: "a", comps: []*component.Component{genericComponent("org.example.A", 0)}},
		fakeSource{name: "b", comps: []*component.Component{genericComponent("org.example.B", 0)}},
	}

	results := p.LoadSourceAsync(context.Background(), srcs, 2, nil)

	total := 0
	for r := range results {
		require.NoError(t, r.Err)
		total += r.Inserted
	}

	assert.Equal(t, 2, total)
	assert.Equal(t, 2, p.Len())
}

func TestLoadSourceAsyncCancelled(t *testing.T) {
	p := New()
	srcs := []Source{
		fakeSource{name: "a", comps: []*component.Component{genericComponent("org.example.A", 0)}},
	}

	cancel := make(chan struct{})
	close(cancel)

	results := p.LoadSourceAsync(context.Background(), srcs, 2, cancel)

	r := <-results
	var cancelled *Cancelled
	require.ErrorAs(t, r.Err, &cancelled)
	assert.Equal(t, 0, p.Len())
}

func TestLoadSourceCancelledAfterParseReturnsNoResults(t *testing.T) {
	p := New()
	cancel := make(chan struct{})
	src := cancellingSource{
		name: "a",
		comps: []*component.Component{
			genericComponent("org.example.A", 0),
			genericComponent("org.example.B", 0),
		},
		cancel: cancel,
	}

	n, err := p.LoadSource(context.Background(), src, cancel)
	var cancelled *Cancelled
	require.ErrorAs(t, err, &cancelled)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, p.Len())
}

type fakeSource struct {
	name  string
	comps []*component.Component
}

func (f fakeSource) Components(ctx context.Context) ([]*component.Component, error) {
	return f.comps, nil
}

func (f fakeSource) String() string { return f.name }

// cancellingSource closes its cancel channel once parsed, simulating
// cancellation arriving after Components returns but before every component
// has been inserted.
type cancellingSource struct {
	name   string
	comps  []*component.Component
	cancel chan struct{}
}

func (f cancellingSource) Components(ctx context.Context) ([]*component.Component, error) {
	close(f.cancel)
	return f.comps, nil
}

func (f cancellingSource) String() string { return f.name }

func TestComponentBoxSortByScore(t *testing.T) {
	box := ComponentBox{
		genericComponent("z", 0),
		genericComponent("a", 0),
	}
	scores := map[string]float64{"z": 1, "a": 1}
	box.SortByScore(func(c *component.Component) float64 { return scores[c.ID] })
	assert.Equal(t, "a", box[0].ID)
	assert.Equal(t, "z", box[1].ID)
}

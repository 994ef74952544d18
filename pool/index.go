// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

import (
	"github.com/cespare/xxhash/v2"

	"appstreamkit.sh/component"
)

// indices holds the secondary lookup structures spec.md §4.6 lists, rebuilt
// lazily the next time a query needs them after an Insert/Remove. compound
// keys (kind, item) are folded into a single uint64 via xxhash rather than a
// concatenated string, avoiding an allocation per lookup on the hot query
// path.
type indices struct {
	byID        map[string][]*component.Component
	byKind      map[component.Kind][]*component.Component
	byCategory  map[string][]*component.Component
	byProvided  map[uint64][]*component.Component
	byLaunchable map[uint64][]*component.Component
	byExtends   map[string][]*component.Component
	byBundleID  map[component.BundleKind][]*component.Component

	stale bool
}

func newIndices() *indices {
	return &indices{stale: true}
}

func providedKey(kind component.ProvidedKind, item string) uint64 {
	return compoundKey(string(kind), item)
}

func launchableKey(kind component.LaunchableKind, entry string) uint64 {
	return compoundKey(string(kind), entry)
}

func compoundKey(kind, item string) uint64 {
	h := xxhash.New()
	h.WriteString(kind)
	h.Write([]byte{0})
	h.WriteString(item)
	return h.Sum64()
}

// rebuild recomputes every index from table following order: the Pool's
// insertion order, or Refine's (priority desc, origin, data-id) order once
// Refine has run, so each index list keeps that same order.
func (idx *indices) rebuild(table map[string]*component.Component, order []string) {
	idx.byID = map[string][]*component.Component{}
	idx.byKind = map[component.Kind][]*component.Component{}
	idx.byCategory = map[string][]*component.Component{}
	idx.byProvided = map[uint64][]*component.Component{}
	idx.byLaunchable = map[uint64][]*component.Component{}
	idx.byExtends = map[string][]*component.Component{}
	idx.byBundleID = map[component.BundleKind][]*component.Component{}

	for _, did := range order {
		c := table[did]
		if c == nil {
			continue
		}

		idx.byID[c.ID] = append(idx.byID[c.ID], c)
		idx.byKind[c.Kind] = append(idx.byKind[c.Kind], c)

		if c.Categories != nil {
			for _, cat := range c.Categories.Names() {
				idx.byCategory[cat] = append(idx.byCategory[cat], c)
			}
		}

		for _, kind := range c.Provided.SortedKinds() {
			for _, item := range c.Provided[kind].Values() {
				k := providedKey(kind, item)
				idx.byProvided[k] = append(idx.byProvided[k], c)
			}
		}

		for _, kind := range c.Launchables.SortedKinds() {
			for _, entry := range c.Launchables[kind] {
				k := launchableKey(kind, entry)
				idx.byLaunchable[k] = append(idx.byLaunchable[k], c)
			}
		}

		for _, extended := range c.Extends {
			idx.byExtends[extended] = append(idx.byExtends[extended], c)
		}

		for kind := range c.Bundles {
			idx.byBundleID[kind] = append(idx.byBundleID[kind], c)
		}
	}

	idx.stale = false
}

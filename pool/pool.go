// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package pool implements the merge-by-data-id component store: the direct
// generalization of kraftkit.sh/manifest.ManifestManager and
// kraftkit.sh/packmanager.Query to the AppStream domain. A Pool accumulates
// components from one or more Sources, resolving collisions by priority and
// merge kind, then exposes the result through a set of indexed queries.
package pool

import (
	"fmt"
	"sort"
	"sync"

	"appstreamkit.sh/component"
)

// Pool is the merge-by-data-id component store. The zero value is not
// usable; construct with New. Safe for concurrent use: one writer at a time,
// many simultaneous readers (sync.RWMutex), matching spec.md §5.
type Pool struct {
	mu    sync.RWMutex
	table map[string]*component.Component
	order []string // data-ids in insertion order, re-sorted by Refine

	idx *indices

	flags *Flags
	host  string
}

// New builds an empty Pool configured by opts.
func New(opts ...Option) *Pool {
	p := &Pool{
		table: map[string]*component.Component{},
		idx:   newIndices(),
		flags: NewFlags(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Flags returns the Pool's load-time configuration.
func (p *Pool) Flags() *Flags { return p.flags }

// Len returns the number of distinct data-ids currently held, including
// hidden components.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.table)
}

// DataID computes the primary-key string a component would occupy in this
// Pool; a thin re-export of component.DataID kept here so callers of pool
// never need to import component just to pre-compute a key.
func DataID(c *component.Component) string {
	return component.DataID(c)
}

// Insert adds c to the pool, implementing spec.md §4.6's exact algorithm:
// a brand-new data-id is inserted outright; an existing one is removed,
// merged, replaced, kept or reported as a hard collision depending on c's
// merge kind and the two components' relative priority.
func (p *Pool) Insert(c *component.Component) error {
	if c == nil {
		return fmt.Errorf("pool: cannot insert a nil component")
	}

	did := component.DataID(c)

	p.mu.Lock()
	defer p.mu.Unlock()

	existing, found := p.table[did]
	if !found {
		p.table[did] = c
		p.order = append(p.order, did)
		p.idx.stale = true
		return nil
	}

	if c.Merge == component.MergeRemove {
		delete(p.table, did)
		p.removeFromOrder(did)
		p.idx.stale = true
		return nil
	}

	if c.Merge != component.MergeNone {
		applyMerge(existing, c, c.Merge)
		p.idx.stale = true
		return nil
	}

	switch {
	case c.Priority > existing.Priority:
		p.table[did] = c
		p.idx.stale = true
		return nil

	case c.Priority < existing.Priority:
		return nil

	case hasNoName(existing) && !hasNoName(c):
		mergeByName(existing, c)
		p.idx.stale = true
		return nil

	case archMismatchesHost(existing, p.hostArch()) && archMatchesHost(c, p.hostArch()):
		p.table[did] = c
		p.idx.stale = true
		return nil

	default:
		return &CollisionError{DataID: did, Priority: existing.Priority}
	}
}

// hostArch is the architecture Insert's tiebreak compares components
// against. Pool has no opinion of its own on the running machine's
// architecture; callers set it via WithHostArchitecture so the comparison
// stays a pure function of inputs, never a runtime.GOARCH read buried here.
func (p *Pool) hostArch() string { return p.host }

func (p *Pool) removeFromOrder(did string) {
	for i, d := range p.order {
		if d == did {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

func hasNoName(c *component.Component) bool {
	_, ok := c.Name.Get("C")
	return !ok && len(c.Name) == 0
}

// mergeByName patches a name-less stub entry (typically a desktop-entry or
// bundle-derived placeholder) with the fuller component's descriptive
// fields, without discarding the stub's own identity fields.
func mergeByName(existing, incoming *component.Component) {
	applyMerge(existing, incoming, component.MergeAppend)
}

func archMismatchesHost(c *component.Component, host string) bool {
	return host != "" && c.Architecture != "" && c.Architecture != host
}

func archMatchesHost(c *component.Component, host string) bool {
	return host == "" || c.Architecture == "" || c.Architecture == host
}

// Remove deletes the component at data-id did, if present.
func (p *Pool) Remove(did string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.table[did]; !ok {
		return
	}
	delete(p.table, did)
	p.removeFromOrder(did)
	p.idx.stale = true
}

// Refine runs the post-load pass spec.md §4.6 describes: extends-back-
// propagation into each parent's Addons list (when Flags().ResolveAddons()
// is set), and required-field validation that marks failing components
// Hidden rather than dropping them. Refine does not resolve media base URLs;
// media URLs keep the form they had after parsing. It also re-sorts the pool's insertion
// order by (priority desc, origin, data-id), so index iteration and
// unscored query results are deterministic regardless of the order sources
// were loaded in (§5).
func (p *Pool) Refine() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.flags.ResolveAddons() {
		for _, c := range p.table {
			for _, extended := range c.Extends {
				if parent, ok := p.table[p.dataIDForID(extended)]; ok {
					addAddon(parent, c.ID)
				} else if parent := p.findByIDLocked(extended); parent != nil {
					addAddon(parent, c.ID)
				}
			}
		}
	}

	for _, c := range p.table {
		if err := c.Validate(); err != nil {
			c.Hidden = true
		}
	}

	sort.SliceStable(p.order, func(i, j int) bool {
		a, b := p.table[p.order[i]], p.table[p.order[j]]
		if a == nil || b == nil {
			return p.order[i] < p.order[j]
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		return p.order[i] < p.order[j]
	})

	p.idx.stale = true
}

// dataIDForID is a best-effort guess at the data-id an extended id would
// occupy when the extending component shares the same scope/bundle/origin/
// branch as its extension target, which is the overwhelmingly common case;
// findByIDLocked is the fallback for when it doesn't hold.
func (p *Pool) dataIDForID(id string) string {
	for did, c := range p.table {
		if c.ID == id {
			return did
		}
	}
	return ""
}

func (p *Pool) findByIDLocked(id string) *component.Component {
	for _, c := range p.table {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func addAddon(parent *component.Component, childID string) {
	for _, a := range parent.Addons {
		if a == childID {
			return
		}
	}
	parent.Addons = append(parent.Addons, childID)
}

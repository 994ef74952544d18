// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"appstreamkit.sh/component"
)

// ComponentBox is the result of a query: a freshly allocated list preserving
// the index's insertion order unless the caller sorts it, never nil, never
// an error in its own right (spec.md §4.6).
type ComponentBox []*component.Component

// SortByScore stably sorts the box descending by score, ties broken by ID so
// the result is deterministic regardless of the box's incoming order.
func (b ComponentBox) SortByScore(score func(*component.Component) float64) ComponentBox {
	sort.SliceStable(b, func(i, j int) bool {
		si, sj := score(b[i]), score(b[j])
		if si != sj {
			return si > sj
		}
		return b[i].ID < b[j].ID
	})
	return b
}

// Visible filters out components Refine marked Hidden.
func (b ComponentBox) Visible() ComponentBox {
	out := make(ComponentBox, 0, len(b))
	for _, c := range b {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

func (p *Pool) ensureIndices() *indices {
	p.mu.RLock()
	if !p.idx.stale {
		snap := *p.idx
		p.mu.RUnlock()
		return &snap
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idx.stale {
		p.idx.rebuild(p.table, p.order)
	}
	snap := *p.idx
	return &snap
}

func copyBox(src []*component.Component) ComponentBox {
	out := make(ComponentBox, len(src))
	copy(out, src)
	return out
}

// ByID returns every component (across origins/branches) carrying id.
func (p *Pool) ByID(id string) ComponentBox {
	return copyBox(p.ensureIndices().byID[id])
}

// ByKind returns every component of the given kind.
func (p *Pool) ByKind(kind component.Kind) ComponentBox {
	return copyBox(p.ensureIndices().byKind[kind])
}

// ByCategory returns every component tagged with a category matching
// pattern. A pattern with no glob metacharacter is an exact match against
// the index; otherwise it is compiled with github.com/gobwas/glob, mirroring
// kraftkit.sh/manifest.ManifestManager.Catalog's name-glob matching. Glob
// results are grouped by matching category in sorted category-name order,
// each component listed once.
func (p *Pool) ByCategory(pattern string) ComponentBox {
	idx := p.ensureIndices()

	if !strings.ContainsAny(pattern, "*?[") {
		return copyBox(idx.byCategory[pattern])
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return ComponentBox{}
	}

	var cats []string
	for cat := range idx.byCategory {
		if g.Match(cat) {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	out := ComponentBox{}
	seen := map[*component.Component]bool{}
	for _, cat := range cats {
		for _, c := range idx.byCategory[cat] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// ByProvided returns every component declaring item under kind.
func (p *Pool) ByProvided(kind component.ProvidedKind, item string) ComponentBox {
	return copyBox(p.ensureIndices().byProvided[providedKey(kind, item)])
}

// ByLaunchable returns every component declaring entry under kind.
func (p *Pool) ByLaunchable(kind component.LaunchableKind, entry string) ComponentBox {
	return copyBox(p.ensureIndices().byLaunchable[launchableKey(kind, entry)])
}

// ByExtends returns the addons of id: every component whose <extends> names
// it.
func (p *Pool) ByExtends(id string) ComponentBox {
	return copyBox(p.ensureIndices().byExtends[id])
}

// ByBundleID returns every component of the given bundle kind whose bundle
// id matches pattern. Bundle ids are reverse-DNS and dot-segmented, so an
// exact/no-wildcard pattern is matched directly, and a wildcard pattern is
// matched with github.com/bmatcuk/doublestar/v4 against the id with its dots
// rewritten to slashes, letting "**" match a whole suffix of segments the
// way it would a directory tree (e.g. "org.gnome.**" matches
// "org.gnome.Calculator.Desktop").
func (p *Pool) ByBundleID(kind component.BundleKind, pattern string) ComponentBox {
	idx := p.ensureIndices()
	candidates := idx.byBundleID[kind]

	if !strings.ContainsAny(pattern, "*?[") {
		out := ComponentBox{}
		for _, c := range candidates {
			if c.Bundles[kind] == pattern {
				out = append(out, c)
			}
		}
		return out
	}

	globPattern := strings.ReplaceAll(pattern, ".", "/")
	out := ComponentBox{}
	for _, c := range candidates {
		id, ok := c.Bundles[kind]
		if !ok {
			continue
		}
		matched, err := doublestar.Match(globPattern, strings.ReplaceAll(id, ".", "/"))
		if err == nil && matched {
			out = append(out, c)
		}
	}
	return out
}

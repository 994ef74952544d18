// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package search

import (
	"strings"

	"appstreamkit.sh/component"
)

// entry is one component's tokenized view, split by field so Query can apply
// spec.md §4.7's per-field weight table.
type entry struct {
	component *component.Component

	id          []string
	name        []string
	keyword     []string
	summary     []string
	category    []string
	description []string
	misc        []string
}

// Index is the token -> posting-list structure spec.md §4.7 names, rebuilt
// by Build (typically once per Pool.Refine). One map per scored field keeps
// the weight lookup in Query a single map access instead of a field-kind
// branch per posting.
type Index struct {
	entries []*entry

	id          map[string][]*entry
	name        map[string][]*entry
	keyword     map[string][]*entry
	summary     map[string][]*entry
	category    map[string][]*entry
	description map[string][]*entry
	misc        map[string][]*entry
}

// Build tokenizes every component in comps and assembles the posting lists
// Query reads. locale selects which localized variant of Name/Summary/
// Description/Keywords is indexed: Name and Summary resolve through
// LocalizedString.Get (exact tag, base language, "C", then the first sorted
// entry), Keywords and Description through LocalizedStringList.Get and
// LocalizedMarkup.Get, which stop after "C".
func Build(comps []*component.Component, locale string, greylist Greylist) *Index {
	idx := &Index{
		id:          map[string][]*entry{},
		name:        map[string][]*entry{},
		keyword:     map[string][]*entry{},
		summary:     map[string][]*entry{},
		category:    map[string][]*entry{},
		description: map[string][]*entry{},
		misc:        map[string][]*entry{},
	}

	for _, c := range comps {
		if c == nil || c.Hidden {
			continue
		}

		e := &entry{
			component:   c,
			id:          TokenizeID(c.ID, greylist),
			name:        tokenizeLocalized(c.Name, locale, greylist),
			keyword:     tokenizeKeywordList(c.Keywords, locale, greylist),
			summary:     tokenizeLocalized(c.Summary, locale, greylist),
			category:    tokenizeCategories(c.Categories, greylist),
			description: tokenizeDescription(c.Description, locale, greylist),
			misc:        tokenizeMisc(c, greylist),
		}

		idx.entries = append(idx.entries, e)
		index(idx.id, e.id, e)
		index(idx.name, e.name, e)
		index(idx.keyword, e.keyword, e)
		index(idx.summary, e.summary, e)
		index(idx.category, e.category, e)
		index(idx.description, e.description, e)
		index(idx.misc, e.misc, e)
	}

	return idx
}

func index(m map[string][]*entry, tokens []string, e *entry) {
	for _, t := range tokens {
		m[t] = append(m[t], e)
	}
}

func tokenizeLocalized(m component.LocalizedString, locale string, greylist Greylist) []string {
	v, ok := m.Get(locale)
	if !ok {
		return nil
	}
	return Tokenize(v, locale, greylist)
}

func tokenizeKeywordList(m component.LocalizedStringList, locale string, greylist Greylist) []string {
	v, ok := m.Get(locale)
	if !ok {
		return nil
	}
	return Tokenize(strings.Join(v, " "), locale, greylist)
}

func tokenizeDescription(m component.LocalizedMarkup, locale string, greylist Greylist) []string {
	doc, ok := m.Get(locale)
	if !ok || doc == nil {
		return nil
	}
	return Tokenize(doc.PlainText(), locale, greylist)
}

func tokenizeCategories(cs *component.CategorySet, greylist Greylist) []string {
	if cs == nil {
		return nil
	}
	return Tokenize(strings.Join(cs.Names(), " "), "C", greylist)
}

func tokenizeMisc(c *component.Component, greylist Greylist) []string {
	var parts []string

	for _, kind := range []component.ProvidedKind{component.ProvidedBinary, component.ProvidedLibrary, component.ProvidedMimetype} {
		if set, ok := c.Provided[kind]; ok {
			parts = append(parts, set.Values()...)
		}
	}
	parts = append(parts, c.Extends...)

	if len(parts) == 0 {
		return nil
	}
	return Tokenize(strings.Join(parts, " "), "C", greylist)
}

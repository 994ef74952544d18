// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import (
	"sort"

	"appstreamkit.sh/locale"
	"appstreamkit.sh/markup"
)

// LocalizedString maps a locale tag ("C", "de_DE", ...) to a single string
// value, e.g. <name>/<summary>.
type LocalizedString map[string]string

// LocalizedStringList maps a locale tag to a list of strings, e.g.
// <keywords>.
type LocalizedStringList map[string][]string

// LocalizedMarkup maps a locale tag to a parsed description document.
type LocalizedMarkup map[string]*markup.Document

// Get resolves a value for tag using the four-step fallback chain from
// spec.md §4.5: exact tag, then the tag's base language, then "C", then
// whatever the first sorted entry is (deterministic, never random).
func (m LocalizedString) Get(tag string) (string, bool) {
	if tag == "" {
		tag = "C"
	}

	if v, ok := m[tag]; ok {
		return v, true
	}

	if base := locale.Strip(tag); base != tag {
		if v, ok := m[base]; ok {
			return v, true
		}
	}

	if v, ok := m["C"]; ok {
		return v, true
	}

	if len(m) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return m[keys[0]], true
}

// Set stores value under tag, applying the drop rules from spec.md §4.5: an
// empty tag, an empty value, or a discardable tag ("x-test", "xx", ...) are
// silently ignored rather than stored.
func (m LocalizedString) Set(tag, value string) {
	if tag == "" || value == "" || locale.IsDiscardable(tag) {
		return
	}

	m[tag] = value
}

// Get resolves a keyword/list value for tag: exact tag, then the tag's base
// language, then "C". Unlike LocalizedString.Get it has no any-entry step;
// it returns false when none of these three is present.
func (m LocalizedStringList) Get(tag string) ([]string, bool) {
	if tag == "" {
		tag = "C"
	}

	if v, ok := m[tag]; ok {
		return v, true
	}

	if base := locale.Strip(tag); base != tag {
		if v, ok := m[base]; ok {
			return v, true
		}
	}

	if v, ok := m["C"]; ok {
		return v, true
	}

	return nil, false
}

func (m LocalizedStringList) Set(tag string, value []string) {
	if tag == "" || len(value) == 0 || locale.IsDiscardable(tag) {
		return
	}

	m[tag] = value
}

// Get resolves a description document for tag: exact tag, then the tag's
// base language, then "C"; it returns false when none of these is present.
func (m LocalizedMarkup) Get(tag string) (*markup.Document, bool) {
	if tag == "" {
		tag = "C"
	}

	if v, ok := m[tag]; ok {
		return v, true
	}

	if base := locale.Strip(tag); base != tag {
		if v, ok := m[base]; ok {
			return v, true
		}
	}

	if v, ok := m["C"]; ok {
		return v, true
	}

	return nil, false
}

func (m LocalizedMarkup) Set(tag string, value *markup.Document) {
	if tag == "" || value == nil || locale.IsDiscardable(tag) {
		return
	}

	m[tag] = value
}

// sortedLocales returns m's keys in deterministic emit order: "C" first,
// then lexicographic, matching spec.md §4.3's Emit requirement that output
// not depend on map iteration order.
func sortedLocales[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "C" {
			return keys[j] != "C"
		}
		if keys[j] == "C" {
			return false
		}
		return keys[i] < keys[j]
	})

	return keys
}

// SortedKeys returns the locale tags of s in deterministic emit order.
func (m LocalizedString) SortedKeys() []string { return sortedLocales(map[string]string(m)) }

// SortedKeys returns the locale tags of m in deterministic emit order.
func (m LocalizedStringList) SortedKeys() []string { return sortedLocales(map[string][]string(m)) }

// SortedKeys returns the locale tags of m in deterministic emit order.
func (m LocalizedMarkup) SortedKeys() []string { return sortedLocales(map[string]*markup.Document(m)) }

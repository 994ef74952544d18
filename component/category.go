// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import "sort"

// CategoryRegistry validates a category name against a known taxonomy. The
// concrete taxonomy (freedesktop.org menu-spec categories, a distro's own
// extensions, ...) is an external collaborator per spec.md §1: this package
// never hardcodes a category list.
type CategoryRegistry interface {
	Valid(name string) bool
}

// CategorySet is the ordered, de-duplicated list of categories a component
// declares, plus the registry it was validated against (nil if unvalidated).
type CategorySet struct {
	names    []string
	seen     map[string]bool
	registry CategoryRegistry
}

// NewCategorySet builds a CategorySet, optionally validating every name
// against registry (pass nil to skip validation).
func NewCategorySet(registry CategoryRegistry, names ...string) (*CategorySet, error) {
	cs := &CategorySet{seen: make(map[string]bool), registry: registry}
	for _, n := range names {
		if err := cs.Add(n); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// Add appends name if it passes the configured registry's validation (or if
// no registry was configured) and isn't already present.
func (cs *CategorySet) Add(name string) error {
	if cs.registry != nil && !cs.registry.Valid(name) {
		return &unknownCategoryError{name: name}
	}

	if cs.seen == nil {
		cs.seen = make(map[string]bool)
	}
	if cs.seen[name] {
		return nil
	}
	cs.seen[name] = true
	cs.names = append(cs.names, name)
	return nil
}

// Has reports whether name is a member.
func (cs *CategorySet) Has(name string) bool {
	return cs != nil && cs.seen[name]
}

// Names returns the set's members in insertion order.
func (cs *CategorySet) Names() []string {
	if cs == nil {
		return nil
	}
	return cs.names
}

// Sorted returns the set's members in lexicographic order.
func (cs *CategorySet) Sorted() []string {
	out := append([]string(nil), cs.Names()...)
	sort.Strings(out)
	return out
}

type unknownCategoryError struct{ name string }

func (e *unknownCategoryError) Error() string {
	return "unknown category: " + e.name
}

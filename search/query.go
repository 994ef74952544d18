// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package search

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"appstreamkit.sh/component"
)

// Field match weights, spec.md §4.7's exact table.
const (
	WeightID          = 1000
	WeightNameExact   = 800
	WeightNamePrefix  = 500
	WeightKeyword     = 400
	WeightSummary     = 100
	WeightCategory    = 80
	WeightDescription = 50
	WeightMisc        = 20
)

// Result is one scored match. Score is the sum of every per-token,
// per-field weight the query's tokens matched in the component (§4.7,
// §8 property 7: adding a matching keyword never decreases it).
type Result struct {
	Component *component.Component
	Score     float64
}

// Query tokenizes q the same way the index was built and returns every
// component with a positive score, descending by score, ties broken by id.
// locale and greylist must match what Build used for deterministic results.
func Query(idx *Index, q, locale string, greylist Greylist) []Result {
	tokens := Tokenize(q, locale, greylist)
	scores := map[*component.Component]float64{}

	for _, t := range tokens {
		addMatches(scores, idx.id[t], WeightID)
		addMatches(scores, idx.name[t], WeightNameExact)
		addMatches(scores, idx.keyword[t], WeightKeyword)
		addMatches(scores, idx.summary[t], WeightSummary)
		addMatches(scores, idx.category[t], WeightCategory)
		addMatches(scores, idx.description[t], WeightDescription)
		addMatches(scores, idx.misc[t], WeightMisc)

		for nameTok, entries := range idx.name {
			if nameTok != t && strings.HasPrefix(nameTok, t) {
				addMatches(scores, entries, WeightNamePrefix)
			}
		}
	}

	return rank(scores)
}

// FuzzyOptions configures FuzzyQuery's near-miss scoring.
type FuzzyOptions struct {
	// Threshold is the minimum Jaro-Winkler similarity (0-1) a query token
	// and an index token must share to count as a near-miss match.
	Threshold float64
}

// WithFuzzyMatch returns FuzzyOptions requiring at least threshold
// similarity, the opt-in spec.md §4.7 describes as an enrichment on top of
// (never a replacement for) the exact-token scoring law.
func WithFuzzyMatch(threshold float64) FuzzyOptions {
	return FuzzyOptions{Threshold: threshold}
}

// FuzzyQuery runs Query's exact scoring, then additionally scores every
// index token within opts.Threshold Jaro-Winkler similarity of a query
// token that didn't already match exactly, weighted by the matched field
// and scaled by the similarity score. Grounded on
// standardbeagle-lci/internal/semantic/fuzzy_matcher.go's
// StringsSimilarity(edlib.JaroWinkler) use.
func FuzzyQuery(idx *Index, q, locale string, greylist Greylist, opts FuzzyOptions) []Result {
	tokens := Tokenize(q, locale, greylist)
	scores := map[*component.Component]float64{}

	for _, t := range tokens {
		addMatches(scores, idx.id[t], WeightID)
		addMatches(scores, idx.name[t], WeightNameExact)
		addMatches(scores, idx.keyword[t], WeightKeyword)
		addMatches(scores, idx.summary[t], WeightSummary)
		addMatches(scores, idx.category[t], WeightCategory)
		addMatches(scores, idx.description[t], WeightDescription)
		addMatches(scores, idx.misc[t], WeightMisc)

		for nameTok, entries := range idx.name {
			if nameTok == t {
				continue
			}
			if strings.HasPrefix(nameTok, t) {
				addMatches(scores, entries, WeightNamePrefix)
				continue
			}
			if sim := similarity(t, nameTok); sim >= opts.Threshold {
				addMatches(scores, entries, WeightNameExact*sim)
			}
		}

		fuzzyField(scores, idx.keyword, t, WeightKeyword, opts.Threshold)
		fuzzyField(scores, idx.summary, t, WeightSummary, opts.Threshold)
		fuzzyField(scores, idx.category, t, WeightCategory, opts.Threshold)
		fuzzyField(scores, idx.description, t, WeightDescription, opts.Threshold)
		fuzzyField(scores, idx.misc, t, WeightMisc, opts.Threshold)
	}

	return rank(scores)
}

func fuzzyField(scores map[*component.Component]float64, field map[string][]*entry, queryTok string, weight float64, threshold float64) {
	for tok, entries := range field {
		if tok == queryTok {
			continue
		}
		if sim := similarity(queryTok, tok); sim >= threshold {
			addMatches(scores, entries, weight*sim)
		}
	}
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

func addMatches(scores map[*component.Component]float64, entries []*entry, weight float64) {
	for _, e := range entries {
		scores[e.component] += weight
	}
}

func rank(scores map[*component.Component]float64) []Result {
	out := make([]Result, 0, len(scores))
	for c, s := range scores {
		if s <= 0 {
			continue
		}
		out = append(out, Result{Component: c, Score: s})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Component.ID < out[j].Component.ID
	})

	return out
}

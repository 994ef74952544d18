// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package locale implements the localization helper spec.md §4.5 describes:
// tag normalization (Strip, IsDiscardable) used by every LocalizedString/
// LocalizedStringList/LocalizedMarkup in package component, and Resolve, the
// locale-fallback resolution chain over a plain tag-to-string table.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// discardableTags are locale tags AppStream producers use as placeholders;
// values under these tags are dropped rather than stored (spec.md §4.5).
var discardableTags = map[string]bool{
	"x-test": true,
	"xx":     true,
}

// IsDiscardable reports whether tag is one of AppStream's placeholder locale
// tags, or empty.
func IsDiscardable(tag string) bool {
	return tag == "" || discardableTags[strings.ToLower(tag)]
}

// Strip reduces a locale tag to its base language, e.g. "de_DE@euro" -> "de",
// "de_DE.UTF-8" -> "de". Most AppStream catalog data uses glibc-style POSIX
// locale names, so the primary strategy is a manual split on the first of
// '_', '@' or '.'. For a bare BCP-47 tag with no such separator (e.g.
// "pt-BR"), golang.org/x/text/language is used to recover the base language
// instead.
func Strip(tag string) string {
	if tag == "" || tag == "C" {
		return tag
	}

	if i := strings.IndexAny(tag, "_@."); i >= 0 {
		return tag[:i]
	}

	if base, err := language.Parse(tag); err == nil {
		if b, conf := base.Base(); conf != language.No {
			return b.String()
		}
	}

	return tag
}

// Resolve implements the exact four-step chain from spec.md §4.5 against an
// arbitrary map[string]string table: exact tag, then the tag's base
// language, then "C", then nothing.
func Resolve(table map[string]string, tag string) (string, bool) {
	if tag == "" {
		tag = "C"
	}

	if v, ok := table[tag]; ok {
		return v, true
	}

	if base := Strip(tag); base != tag {
		if v, ok := table[base]; ok {
			return v, true
		}
	}

	if v, ok := table["C"]; ok {
		return v, true
	}

	return "", false
}

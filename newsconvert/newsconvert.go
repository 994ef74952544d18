// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package newsconvert turns a free-form NEWS/CHANGELOG file into the
// []*component.Release a <releases> block would otherwise have to be
// hand-authored for (spec.md §15). Grounded on original_source's
// as-news-convert.c: sections are separated by blank lines, a section's
// opening line is pattern-matched to guess what it documents (a version
// header, a bugfix list, a feature list, ...), and each kind is rendered
// into a markup.Document the same way the C implementation builds its HTML
// chunks by hand. Reimplemented against a plain io.Reader instead of a
// filename, and building markup.Document blocks directly rather than
// generating an HTML string only to re-parse it.
package newsconvert

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"appstreamkit.sh/component"
	"appstreamkit.sh/markup"
)

type sectionKind int

const (
	sectionUnknown sectionKind = iota
	sectionHeader
	sectionNotes
	sectionBugfix
	sectionFeatures
	sectionMisc
	sectionTranslation
	sectionDocumentation
	sectionContributors
	sectionTranslators
)

// headerMarkers maps a substring that, if present in a section, identifies
// its kind. Order matters only in that the header markers ("~~~~"/"----")
// are checked first so a version-underline section is never mistaken for
// prose that happens to mention one of the other labels.
var headerMarkers = []string{"~~~~", "----"}

var labelMarkers = []struct {
	label string
	kind  sectionKind
}{
	{"Bugfix:\n", sectionBugfix},
	{"Bugfixes:\n", sectionBugfix},
	{"Bug fixes:\n", sectionBugfix},
	{"Features:\n", sectionFeatures},
	{"Removed features:\n", sectionFeatures},
	{"Specification:\n", sectionDocumentation},
	{"Documentation:\n", sectionDocumentation},
	{"Notes:\n", sectionNotes},
	{"Note:\n", sectionNotes},
	{"Miscellaneous:\n", sectionMisc},
	{"Misc:\n", sectionMisc},
	{"Translations:\n", sectionTranslation},
	{"Translation:\n", sectionTranslation},
	{"Translations\n", sectionTranslation},
	{"Contributors:\n", sectionContributors},
	{"With contributions from:\n", sectionContributors},
	{"Thanks to:\n", sectionContributors},
	{"Translators:\n", sectionTranslators},
}

func guessSection(text string) sectionKind {
	for _, m := range headerMarkers {
		if strings.Contains(text, m) {
			return sectionHeader
		}
	}
	for _, m := range labelMarkers {
		if strings.Contains(text, m.label) {
			return m.kind
		}
	}
	return sectionUnknown
}

// ParseNEWS reads a NEWS-style changelog and returns one Release per
// version section, newest-first the way the source file lists them.
// A section whose kind cannot be guessed is reported as an error naming
// the section, matching the strict upstream behavior of refusing to
// silently drop unrecognized content.
func ParseNEWS(r io.Reader) ([]*component.Release, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("newsconvert: reading input: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("newsconvert: input was empty")
	}

	// Unsplit lines that were hard-wrapped with a leading 3-space
	// continuation indent, the convention upstream NEWS files use.
	data := strings.ReplaceAll(string(raw), "\n   ", " ")

	var releases []*component.Release
	var cur *component.Release
	var blocks []markup.Block

	flush := func() {
		if cur == nil {
			return
		}
		if len(blocks) > 0 {
			cur.Description = component.LocalizedMarkup{"C": &markup.Document{Blocks: blocks}}
		}
		releases = append(releases, cur)
		cur, blocks = nil, nil
	}

	for _, section := range strings.Split(data, "\n\n") {
		if strings.TrimSpace(section) == "" {
			continue
		}

		switch guessSection(section) {
		case sectionHeader:
			flush()
			rel, err := parseHeader(section)
			if err != nil {
				return nil, fmt.Errorf("newsconvert: parsing header %q: %w", section, err)
			}
			cur = rel

		case sectionBugfix:
			lines := strings.Split(section, "\n")
			if len(lines) == 2 {
				blocks = append(blocks, paragraph("This release fixes the following bug:"))
			} else {
				blocks = append(blocks, paragraph("This release fixes the following bugs:"))
			}
			blocks = append(blocks, listBlock(lines[1:]))

		case sectionFeatures:
			lines := strings.Split(section, "\n")
			if len(lines) == 2 {
				blocks = append(blocks, paragraph("This release adds the following feature:"))
			} else {
				blocks = append(blocks, paragraph("This release adds the following features:"))
			}
			blocks = append(blocks, listBlock(lines[1:]))

		case sectionMisc:
			lines := strings.Split(section, "\n")
			if len(lines) == 2 {
				blocks = append(blocks, paragraph("This release includes the following change:"))
			} else {
				blocks = append(blocks, paragraph("This release includes the following changes:"))
			}
			blocks = append(blocks, listBlock(lines[1:]))

		case sectionDocumentation:
			lines := strings.Split(section, "\n")
			blocks = append(blocks, paragraph("This release updates documentation:"))
			blocks = append(blocks, listBlock(lines[1:]))

		case sectionTranslation:
			blocks = append(blocks, paragraph("This release updates translations."))

		case sectionContributors:
			blocks = append(blocks, paragraph("With contributions from:"))
			blocks = append(blocks, proseOrList(section)...)

		case sectionTranslators:
			blocks = append(blocks, paragraph("Updated localization by:"))
			blocks = append(blocks, proseOrList(section)...)

		case sectionNotes:
			blocks = append(blocks, paraMarkup(section)...)

		default:
			return nil, fmt.Errorf("newsconvert: failed to classify section %q", section)
		}
	}
	flush()

	return releases, nil
}

// parseHeader reads the "Version X\nReleased: YYYY-MM-DD" pair a NEWS
// section opens with. A release date containing "-xx"/"-XX"/"-??" marks an
// as-yet-unreleased development snapshot, stamped with the current time
// instead of a parsed date.
func parseHeader(section string) (*component.Release, error) {
	var version, released string
	for _, line := range strings.Split(section, "\n") {
		switch {
		case strings.HasPrefix(line, "Version "):
			version = strings.TrimPrefix(line, "Version ")
		case strings.HasPrefix(line, "Released: "):
			released = strings.TrimPrefix(line, "Released: ")
		}
	}

	if version == "" {
		return nil, fmt.Errorf("no version line found")
	}
	if released == "" {
		return nil, fmt.Errorf("no release line found")
	}

	rel := &component.Release{Version: version}

	if strings.Contains(released, "-xx") || strings.Contains(released, "-XX") || strings.Contains(released, "-??") {
		now := time.Now().UTC()
		rel.Kind = component.ReleaseDevel
		rel.Date = now.Format("2006-01-02")
		rel.Timestamp = now.Unix()
		return rel, nil
	}

	parts := strings.Split(released, "-")
	if len(parts) != 3 {
		return nil, fmt.Errorf("unable to parse release date %q", released)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("unable to parse release date %q", released)
	}

	dt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	rel.Kind = component.ReleaseStable
	rel.Date = dt.Format("2006-01-02")
	rel.Timestamp = dt.Unix()

	return rel, nil
}

// proseOrList renders section (minus its label line) as a bullet list when
// it looks enumerated, otherwise as plain paragraphs.
func proseOrList(section string) []markup.Block {
	if strings.Contains(section, "* ") || strings.Contains(section, "- ") {
		lines := strings.Split(section, "\n")
		return []markup.Block{listBlock(lines[1:])}
	}
	return paraMarkup(section)
}

// listBlock turns lines (with an optional "- "/"* " bullet prefix) into a
// single UnorderedList block, one item per non-blank line.
func listBlock(lines []string) markup.Block {
	var items [][]markup.Span
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(strings.TrimPrefix(line, "- "), "* ")
		items = append(items, []markup.Span{{Text: line}})
	}
	return markup.Block{Kind: markup.UnorderedList, Items: items}
}

// paraMarkup renders a free-form section as one Paragraph block per
// blank-line-separated chunk after its opening (header) line, or — when the
// body itself uses "- "/"* " bullets without a recognized label — one
// paragraph per bullet.
func paraMarkup(section string) []markup.Block {
	var blocks []markup.Block

	if strings.Contains(section, "* ") || strings.Contains(section, "- ") {
		lines := strings.Split(section, "\n")
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			line = strings.TrimPrefix(strings.TrimPrefix(line, "- "), "* ")
			blocks = append(blocks, paragraph(line))
		}
		return blocks
	}

	idx := strings.Index(section, "\n")
	if idx < 0 {
		return []markup.Block{paragraph(strings.TrimSpace(section))}
	}

	for _, chunk := range strings.Split(section[idx+1:], "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		blocks = append(blocks, paragraph(chunk))
	}

	return blocks
}

func paragraph(text string) markup.Block {
	return markup.Block{Kind: markup.Paragraph, Spans: []markup.Span{{Text: text}}}
}

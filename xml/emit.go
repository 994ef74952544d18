// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package xml

import (
	"encoding/xml"
	"fmt"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
	"appstreamkit.sh/markup"
)

// Emit serializes components back to XML, in the dialect named by
// ctx.FormatStyle(): Metainfo emits one bare <component> document (only the
// first entry of components is used), Catalog wraps every entry in a single
// <components> root carrying ctx's origin/media-baseurl/architecture.
//
// Output is deterministic: locale-tagged elements are sorted C-first then
// lexicographically (component.sortedLocales), map-typed fields are sorted
// by key, and every optional field is omitted when unset.
func Emit(components []*component.Component, ctx *appstreamctx.Context) ([]byte, error) {
	if ctx.FormatStyle() == appstreamctx.Catalog {
		doc := docComponents{
			Version:      "1.0",
			Origin:       ctx.Origin(),
			MediaBaseURL: ctx.MediaBaseURL(),
			Architecture: ctx.Architecture(),
			Priority:     ctx.Priority(),
		}
		for _, c := range components {
			doc.Components = append(doc.Components, emitComponent(c))
		}
		return marshalIndent(doc)
	}

	if len(components) == 0 {
		return nil, fmt.Errorf("xml: Emit requires at least one component in metainfo style")
	}

	return marshalIndent(emitComponent(components[0]))
}

func marshalIndent(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func emitComponent(c *component.Component) docComponent {
	dc := docComponent{
		Type:            string(c.Kind),
		Merge:           emitMergeKind(c.Merge),
		Priority:        c.Priority,
		ID:              c.ID,
		MetadataLicense: c.MetadataLicense,
		ProjectLicense:  c.ProjectLicense,
		ProjectGroup:    c.ProjectGroup,
		Extends:         c.Extends,
	}

	dc.Name = emitLocalizedTexts(c.Name)
	dc.Summary = emitLocalizedTexts(c.Summary)
	dc.Description = emitDescriptions(c.Description)

	for _, tag := range c.Keywords.SortedKeys() {
		values, _ := c.Keywords.Get(tag)
		for _, v := range values {
			dc.Keywords = append(dc.Keywords, docText{Lang: emitLang(tag), Value: v})
		}
	}

	if c.Categories != nil {
		dc.Categories = c.Categories.Sorted()
	}

	for _, kind := range sortedURLKinds(c.URLs) {
		dc.URLs = append(dc.URLs, docURL{Type: string(kind), Value: c.URLs[kind]})
	}

	for _, icon := range c.Icons {
		dc.Icons = append(dc.Icons, docIcon{
			Type: string(icon.Kind), Width: icon.Width, Height: icon.Height,
			Scale: icon.Scale, Value: icon.Value,
		})
	}

	for _, s := range c.Screenshots {
		dc.Screenshots = append(dc.Screenshots, emitScreenshot(s))
	}

	for _, kind := range c.Launchables.SortedKinds() {
		for _, v := range c.Launchables[kind] {
			dc.Launchables = append(dc.Launchables, docLaunchable{Type: string(kind), Value: v})
		}
	}

	if len(c.Provided) > 0 {
		dc.Provides = emitProvides(c.Provided)
	}

	for _, kind := range c.Bundles.SortedKinds() {
		dc.Bundles = append(dc.Bundles, docBundle{Type: string(kind), Value: c.Bundles[kind]})
	}

	if c.Releases != nil && len(c.Releases.Entries) > 0 {
		dc.Releases = emitReleases(c.Releases)
	}

	dc.Requires = emitRelationGroup(c.Relations, component.RelationRequires)
	dc.Recommends = emitRelationGroup(c.Relations, component.RelationRecommends)
	dc.Supports = emitRelationGroup(c.Relations, component.RelationSupports)

	for _, cr := range c.ContentRating {
		doc := docContentRating{Type: cr.Kind}
		for _, id := range sortedStringKeys(cr.Attributes) {
			doc.Attributes = append(doc.Attributes, docContentAttribute{ID: id, Value: string(cr.Attributes[id])})
		}
		dc.ContentRatings = append(dc.ContentRatings, doc)
	}

	if c.Branding != nil {
		for _, scheme := range []component.SchemePreference{component.SchemeLight, component.SchemeDark} {
			if v, ok := c.Branding.Lookup(component.ColorPrimary, scheme); ok {
				if dc.Branding == nil {
					dc.Branding = &docBranding{}
				}
				dc.Branding.Colors = append(dc.Branding.Colors, docColor{
					Type: string(component.ColorPrimary), SchemePreference: string(scheme), Value: v,
				})
			}
		}
	}

	for _, t := range c.Tags {
		dc.Tags = append(dc.Tags, docTag{Namespace: t.Namespace, Value: t.Value})
	}

	for _, tr := range c.Translations {
		dc.Translations = append(dc.Translations, docTranslation{Type: string(tr.Kind), Value: tr.Domain})
	}

	for _, sg := range c.Suggested {
		dc.Suggests = append(dc.Suggests, docSuggests{Type: string(sg.Kind), IDs: sg.IDs})
	}

	for _, ag := range c.Agreements {
		dc.Agreements = append(dc.Agreements, emitAgreement(ag))
	}

	for _, rv := range c.Reviews {
		dc.Reviews = append(dc.Reviews, docReview{
			ID: rv.ID, Rating: rv.Rating, Locale: rv.Locale, Version: rv.Version,
			Reviewer: rv.Reviewer, Date: rv.Date, Summary: rv.Summary, Value: rv.Text,
		})
	}

	if c.Developer != nil {
		dc.DeveloperID = c.Developer.ID
		dc.DeveloperName = emitLocalizedTexts(c.Developer.Name)
	}

	dc.Replaces = c.Replaces
	dc.CompulsoryForDesktop = c.CompulsoryForDesktop

	if len(c.Languages) > 0 {
		for _, locale := range sortedStringKeys(c.Languages) {
			dc.Languages = append(dc.Languages, docLang{Value: locale, Percentage: c.Languages[locale]})
		}
	}

	if len(c.Custom) > 0 {
		custom := &docCustom{}
		for _, k := range sortedStringKeys(c.Custom) {
			custom.Values = append(custom.Values, docCustomValue{Key: k, Value: c.Custom[k]})
		}
		dc.Custom = custom
	}

	return dc
}

func emitMergeKind(m component.MergeKind) string {
	if m == component.MergeNone {
		return ""
	}
	return string(m)
}

func emitLang(tag string) string {
	if tag == "C" {
		return ""
	}
	return tag
}

func emitLocalizedTexts(m component.LocalizedString) []docText {
	var out []docText
	for _, tag := range m.SortedKeys() {
		v, _ := m.Get(tag)
		out = append(out, docText{Lang: emitLang(tag), Value: v})
	}
	return out
}

func emitDescriptions(m component.LocalizedMarkup) []docDescription {
	var out []docDescription
	for _, tag := range m.SortedKeys() {
		doc, _ := m.Get(tag)
		var paras []docParagraph
		for _, block := range doc.Blocks {
			switch block.Kind {
			case markup.Paragraph:
				paras = append(paras, docParagraph{XMLName: xml.Name{Local: "p"}, Value: joinSpansForEmit(block.Spans)})
			case markup.UnorderedList:
				var items []string
				for _, item := range block.Items {
					items = append(items, joinSpansForEmit(item))
				}
				paras = append(paras, docParagraph{XMLName: xml.Name{Local: "ul"}, Items: items})
			case markup.OrderedList:
				var items []string
				for _, item := range block.Items {
					items = append(items, joinSpansForEmit(item))
				}
				paras = append(paras, docParagraph{XMLName: xml.Name{Local: "ol"}, Items: items})
			}
		}
		out = append(out, docDescription{Lang: emitLang(tag), Paras: paras})
	}
	return out
}

func joinSpansForEmit(spans []markup.Span) string {
	var out string
	for i, s := range spans {
		if i > 0 {
			out += " "
		}
		out += s.Text
	}
	return out
}

func emitScreenshot(s *component.Screenshot) docScreenshot {
	doc := docScreenshot{Type: string(s.Kind)}
	doc.Caption = emitLocalizedTexts(s.Caption)

	for _, img := range s.Images {
		doc.Images = append(doc.Images, docImage{
			Type: string(img.Kind), Width: img.Width, Height: img.Height,
			Lang: img.Locale, Value: img.URL,
		})
	}

	for _, v := range s.Videos {
		doc.Videos = append(doc.Videos, docVideo{
			Codec: string(v.Codec), Container: string(v.Container),
			Width: v.Width, Height: v.Height, Value: v.URL,
		})
	}

	return doc
}

func emitProvides(p component.Provided) *docProvides {
	doc := &docProvides{}
	for _, kind := range p.SortedKinds() {
		values := p[kind].Sorted()
		switch kind {
		case component.ProvidedLibrary:
			doc.Library = values
		case component.ProvidedBinary:
			doc.Binary = values
		case component.ProvidedFont:
			doc.Font = values
		case component.ProvidedModalias:
			doc.Modalias = values
		case component.ProvidedMimetype:
			doc.Mediatype = values
		case component.ProvidedPython3:
			doc.Python3 = values
		case component.ProvidedID:
			doc.ID = values
		case component.ProvidedDBus:
			for _, v := range values {
				doc.DBus = append(doc.DBus, docProvidesTyped{Value: v})
			}
		case component.ProvidedFirmware:
			for _, v := range values {
				doc.Firmware = append(doc.Firmware, docProvidesTyped{Value: v})
			}
		}
	}
	return doc
}

func emitReleases(rl *component.ReleaseList) *docReleases {
	doc := &docReleases{}
	if rl.ExternalURL != "" {
		doc.Type = "external"
		doc.URL = rl.ExternalURL
	}

	for _, r := range rl.Entries {
		doc.Releases = append(doc.Releases, emitRelease(r))
	}

	return doc
}

func emitRelease(r *component.Release) docRelease {
	out := docRelease{
		Version: r.Version, Date: r.Date, Timestamp: r.Timestamp,
		DateEOL: r.DateEOL, Urgency: string(r.Urgency),
	}
	switch r.Kind {
	case component.ReleaseDevel:
		out.Type = "development"
	case component.ReleaseSnapshot:
		out.Type = "snapshot"
	}

	if len(r.Description) > 0 {
		descs := emitDescriptions(r.Description)
		if len(descs) > 0 {
			out.Description = &descs[0]
		}
	}

	if r.URL != "" {
		out.URLs = append(out.URLs, docURL{Type: "details", Value: r.URL})
	}

	for _, iss := range r.Issues {
		out.Issues = append(out.Issues, docIssue{Type: string(iss.Kind), URL: iss.URL, Value: iss.ID})
	}

	for _, a := range r.Artifacts {
		art := docArtifact{Type: string(a.Kind), Platform: a.Platform, Location: a.URL, Filename: a.Filename}
		for _, cs := range a.Checksums {
			art.Checksum = append(art.Checksum, docChecksum{Type: string(cs.Kind), Value: cs.Value})
		}
		for _, sz := range a.Sizes {
			art.Size = append(art.Size, docSize{Type: string(sz.Kind), Value: sz.Bytes})
		}
		out.Artifacts = append(out.Artifacts, art)
	}

	return out
}

func emitRelationGroup(relations []*component.Relation, kind component.RelationKind) *docRelationGroup {
	var items []docRelationItem
	for _, r := range relations {
		if r.Kind != kind {
			continue
		}
		items = append(items, docRelationItem{
			XMLName: xml.Name{Local: string(r.Item)},
			Version: r.Version,
			Compare: string(r.Compare),
			Side:    string(r.DisplaySide),
			Value:   r.Value,
		})
	}
	if len(items) == 0 {
		return nil
	}
	return &docRelationGroup{Items: items}
}

func emitAgreement(a *component.Agreement) docAgreement {
	out := docAgreement{Type: string(a.Kind), ID: a.ID, Version: a.Version}
	for _, s := range a.Sections {
		section := docAgreementSection{Title: emitLocalizedTexts(s.Title)}
		for _, tag := range s.Description.SortedKeys() {
			doc, _ := s.Description.Get(tag)
			section.Description = append(section.Description, docText{Lang: emitLang(tag), Value: doc.PlainText()})
		}
		out.Sections = append(out.Sections, section)
	}
	return out
}

func sortedURLKinds(m map[component.URLKind]string) []component.URLKind {
	kinds := make([]component.URLKind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	for i := 1; i < len(kinds); i++ {
		for j := i; j > 0 && kinds[j-1] > kinds[j]; j-- {
			kinds[j-1], kinds[j] = kinds[j], kinds[j-1]
		}
	}
	return kinds
}

// sortedStringKeys returns m's keys (Languages locales, Custom keys) in
// deterministic order so repeated Emit calls produce byte-identical output.
func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

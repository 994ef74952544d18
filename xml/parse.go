// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
	"appstreamkit.sh/locale"
	"appstreamkit.sh/markup"
)

// Parse loads a metainfo or catalog XML document, returning every component
// found plus a non-fatal LoadReport. The root element (<component> vs
// <components>) determines the dialect; ctx's FormatStyle is not consulted
// on parse, only on Emit, since the document itself is authoritative.
func Parse(data []byte, ctx *appstreamctx.Context) ([]*component.Component, *LoadReport, error) {
	report := &LoadReport{}

	root, err := rootElementName(data)
	if err != nil {
		return nil, report, err
	}

	switch root {
	case "components":
		var doc docComponents
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, report, wrapSyntaxError(err)
		}

		origin := doc.Origin
		mediaBaseURL := doc.MediaBaseURL
		if mediaBaseURL == "" {
			mediaBaseURL = ctx.MediaBaseURL()
		}
		priority := doc.Priority
		arch := doc.Architecture

		out := make([]*component.Component, 0, len(doc.Components))
		for _, dc := range doc.Components {
			c, err := convertComponent(&dc, ctx, report)
			if err != nil {
				return nil, report, err
			}
			if c.Origin == "" {
				c.Origin = origin
			}
			if priority != 0 {
				c.Priority = priority
			}
			if c.Architecture == "" {
				c.Architecture = arch
			}
			resolveComponentMediaBaseURL(c, mediaBaseURL)
			out = append(out, c)
		}
		return out, report, nil

	case "component":
		var dc docComponent
		if err := xml.Unmarshal(data, &dc); err != nil {
			return nil, report, wrapSyntaxError(err)
		}

		c, err := convertComponent(&dc, ctx, report)
		if err != nil {
			return nil, report, err
		}
		resolveComponentMediaBaseURL(c, ctx.MediaBaseURL())
		return []*component.Component{c}, report, nil

	default:
		return nil, report, &SchemaError{Element: root, Reason: "expected <component> or <components> root"}
	}
}

func rootElementName(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", wrapSyntaxError(err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func wrapSyntaxError(err error) error {
	if se, ok := err.(*xml.SyntaxError); ok {
		return &ParseError{Line: se.Line, Message: se.Msg}
	}
	return &ParseError{Message: err.Error()}
}

func resolveComponentMediaBaseURL(c *component.Component, baseURL string) {
	if baseURL == "" {
		return
	}

	for _, icon := range c.Icons {
		if icon.Kind == component.IconRemote {
			icon.Value = resolveMediaURL(baseURL, icon.Value)
		}
	}

	for _, s := range c.Screenshots {
		s.ResolveMediaBaseURL(baseURL)
	}

	if c.Releases != nil {
		for _, r := range c.Releases.Entries {
			for i := range r.Artifacts {
				r.Artifacts[i].URL = resolveMediaURL(baseURL, r.Artifacts[i].URL)
			}
		}
	}
}

func resolveMediaURL(base, ref string) string {
	if ref == "" || strings.Contains(ref, "://") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}

func convertComponent(dc *docComponent, ctx *appstreamctx.Context, report *LoadReport) (*component.Component, error) {
	c := &component.Component{
		ID:                   dc.ID,
		Kind:                 component.Kind(dc.Type),
		Merge:                component.MergeKind(dc.Merge),
		Priority:             dc.Priority,
		MetadataLicense:      dc.MetadataLicense,
		ProjectLicense:       dc.ProjectLicense,
		ProjectGroup:         dc.ProjectGroup,
		Name:                 component.LocalizedString{},
		Summary:              component.LocalizedString{},
		Description:          component.LocalizedMarkup{},
		Keywords:             component.LocalizedStringList{},
		URLs:                 map[component.URLKind]string{},
		Provided:             component.Provided{},
		Bundles:              component.Bundles{},
		Launchables:          component.Launchables{},
		Extends:              dc.Extends,
		Replaces:             dc.Replaces,
		CompulsoryForDesktop: dc.CompulsoryForDesktop,
	}
	if c.Kind == "" {
		c.Kind = component.KindGeneric
	}

	setLocalizedTexts(c.Name, dc.Name, ctx)
	setLocalizedTexts(c.Summary, dc.Summary, ctx)
	convertDescriptions(c.Description, dc.Description, ctx)

	kwByLocale := map[string][]string{}
	for _, kw := range dc.Keywords {
		key, keep := filterLocale(ctx.Locale(), kw.Lang)
		if !keep {
			continue
		}
		kwByLocale[key] = append(kwByLocale[key], strings.TrimSpace(kw.Value))
	}
	for tag, values := range kwByLocale {
		c.Keywords.Set(tag, values)
	}

	if len(dc.Categories) > 0 {
		cs, err := component.NewCategorySet(nil, dc.Categories...)
		if err != nil {
			return nil, err
		}
		c.Categories = cs
	}

	for _, u := range dc.URLs {
		if u.Type == "" {
			report.warn("component %s: <url> without type attribute", c.ID)
			continue
		}
		c.URLs[component.URLKind(u.Type)] = strings.TrimSpace(u.Value)
	}

	for _, icon := range dc.Icons {
		c.Icons = append(c.Icons, &component.Icon{
			Kind:   component.IconKind(icon.Type),
			Value:  strings.TrimSpace(icon.Value),
			Width:  icon.Width,
			Height: icon.Height,
			Scale:  icon.Scale,
		})
	}

	for _, s := range dc.Screenshots {
		c.Screenshots = append(c.Screenshots, convertScreenshot(&s, ctx))
	}

	for _, l := range dc.Launchables {
		c.Launchables.Add(component.LaunchableKind(l.Type), strings.TrimSpace(l.Value))
	}

	if dc.Provides != nil {
		convertProvides(c.Provided, dc.Provides)
	}

	for _, b := range dc.Bundles {
		c.Bundles[component.BundleKind(b.Type)] = strings.TrimSpace(b.Value)
	}

	if dc.Releases != nil {
		c.Releases = convertReleases(dc.Releases, ctx)
	}

	c.Relations = append(c.Relations, convertRelationGroup(dc.Requires, component.RelationRequires, report)...)
	c.Relations = append(c.Relations, convertRelationGroup(dc.Recommends, component.RelationRecommends, report)...)
	c.Relations = append(c.Relations, convertRelationGroup(dc.Supports, component.RelationSupports, report)...)

	for _, cr := range dc.ContentRatings {
		attrs := map[string]component.RatingKind{}
		for _, a := range cr.Attributes {
			attrs[a.ID] = component.RatingKind(strings.TrimSpace(a.Value))
		}
		c.ContentRating = append(c.ContentRating, &component.ContentRating{Kind: cr.Type, Attributes: attrs})
	}

	if dc.Branding != nil {
		b := &component.Branding{}
		for _, col := range dc.Branding.Colors {
			b.Add(component.ColorKind(col.Type), component.SchemePreference(col.SchemePreference), strings.TrimSpace(col.Value))
		}
		c.Branding = b
	}

	for _, t := range dc.Tags {
		c.Tags = append(c.Tags, component.Tag{Namespace: t.Namespace, Value: strings.TrimSpace(t.Value)})
	}

	for _, tr := range dc.Translations {
		c.Translations = append(c.Translations, &component.Translation{
			Kind:   component.TranslationKind(tr.Type),
			Domain: strings.TrimSpace(tr.Value),
		})
	}

	for _, sg := range dc.Suggests {
		c.Suggested = append(c.Suggested, &component.Suggested{
			Kind: component.SuggestedKind(sg.Type),
			IDs:  append([]string(nil), sg.IDs...),
		})
	}

	for _, ag := range dc.Agreements {
		c.Agreements = append(c.Agreements, convertAgreement(&ag))
	}

	for _, rv := range dc.Reviews {
		c.Reviews = append(c.Reviews, &component.Review{
			ID:       rv.ID,
			Rating:   rv.Rating,
			Locale:   rv.Locale,
			Summary:  strings.TrimSpace(rv.Summary),
			Text:     strings.TrimSpace(rv.Value),
			Version:  rv.Version,
			Reviewer: rv.Reviewer,
			Date:     rv.Date,
		})
	}

	if len(dc.DeveloperName) > 0 || dc.DeveloperID != "" {
		dev := &component.Developer{ID: dc.DeveloperID, Name: component.LocalizedString{}}
		setLocalizedTexts(dev.Name, dc.DeveloperName, ctx)
		c.Developer = dev
	}

	for _, m := range dc.Mimetypes {
		c.Provided.Add(component.ProvidedMimetype, m)
	}

	if len(dc.Languages) > 0 {
		c.Languages = map[string]int{}
		for _, l := range dc.Languages {
			c.Languages[l.Value] = l.Percentage
		}
	}

	if dc.Custom != nil && len(dc.Custom.Values) > 0 {
		c.Custom = map[string]string{}
		for _, v := range dc.Custom.Values {
			c.Custom[v.Key] = v.Value
		}
	}

	return c, nil
}

func setLocalizedTexts(dst component.LocalizedString, texts []docText, ctx *appstreamctx.Context) {
	for _, t := range texts {
		key, keep := filterLocale(ctx.Locale(), t.Lang)
		if !keep {
			continue
		}
		dst.Set(key, strings.TrimSpace(t.Value))
	}
}

// filterLocale decides whether a parsed locale-tagged value should be kept,
// and under what map key, given the Context's configured locale (spec.md
// §4.3 "Locale handling on parse"). ctxLocale == "ALL" retains everything.
func filterLocale(ctxLocale, lang string) (string, bool) {
	key := lang
	if key == "" {
		key = "C"
	}

	if locale.IsDiscardable(lang) {
		return "", false
	}

	if ctxLocale == "" || ctxLocale == "ALL" {
		return key, true
	}

	if key == ctxLocale || key == "C" {
		return key, true
	}

	if locale.Strip(key) == locale.Strip(ctxLocale) {
		return key, true
	}

	return "", false
}

func convertDescriptions(dst component.LocalizedMarkup, descs []docDescription, ctx *appstreamctx.Context) {
	// Group paragraphs by locale: catalog style carries Lang on the
	// <description> element itself; metainfo style carries it on each child
	// <p>/<ul>/<ol>.
	grouped := map[string][]docParagraph{}

	for _, d := range descs {
		if d.Lang != "" {
			grouped[d.Lang] = append(grouped[d.Lang], d.Paras...)
			continue
		}
		for _, p := range d.Paras {
			grouped[p.Lang] = append(grouped[p.Lang], p)
		}
	}

	for lang, paras := range grouped {
		key, keep := filterLocale(ctx.Locale(), lang)
		if !keep {
			continue
		}

		frag := buildHTMLFragment(paras)
		doc, err := markup.ParseHTML(frag)
		if err != nil {
			continue
		}
		dst.Set(key, doc)
	}
}

func buildHTMLFragment(paras []docParagraph) string {
	var b strings.Builder
	for _, p := range paras {
		switch p.XMLName.Local {
		case "p":
			b.WriteString("<p>")
			b.WriteString(p.Value)
			b.WriteString("</p>")
		case "ul":
			b.WriteString("<ul>")
			for _, item := range p.Items {
				b.WriteString("<li>")
				b.WriteString(item)
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		case "ol":
			b.WriteString("<ol>")
			for _, item := range p.Items {
				b.WriteString("<li>")
				b.WriteString(item)
				b.WriteString("</li>")
			}
			b.WriteString("</ol>")
		}
	}
	return b.String()
}

func convertScreenshot(s *docScreenshot, ctx *appstreamctx.Context) *component.Screenshot {
	out := &component.Screenshot{
		Kind:    component.ScreenshotKind(s.Type),
		Caption: component.LocalizedString{},
	}
	if out.Kind == "" {
		out.Kind = component.ScreenshotDefault
	}
	setLocalizedTexts(out.Caption, s.Caption, ctx)

	for _, img := range s.Images {
		out.Images = append(out.Images, component.Image{
			Kind:   component.ImageKind(img.Type),
			URL:    strings.TrimSpace(img.Value),
			Width:  img.Width,
			Height: img.Height,
			Locale: img.Lang,
		})
	}

	for _, v := range s.Videos {
		out.Videos = append(out.Videos, component.Video{
			Codec:     component.VideoCodec(v.Codec),
			Container: component.VideoContainer(v.Container),
			URL:       strings.TrimSpace(v.Value),
			Width:     v.Width,
			Height:    v.Height,
		})
	}

	if len(out.Images) == 0 && len(out.Videos) == 0 && strings.TrimSpace(s.Legacy) != "" {
		out.Images = append(out.Images, component.Image{Kind: component.ImageSource, URL: strings.TrimSpace(s.Legacy)})
	}

	return out
}

func convertProvides(dst component.Provided, p *docProvides) {
	for _, v := range p.Library {
		dst.Add(component.ProvidedLibrary, v)
	}
	for _, v := range p.Binary {
		dst.Add(component.ProvidedBinary, v)
	}
	for _, v := range p.Font {
		dst.Add(component.ProvidedFont, v)
	}
	for _, v := range p.Modalias {
		dst.Add(component.ProvidedModalias, v)
	}
	for _, v := range p.Mediatype {
		dst.Add(component.ProvidedMimetype, v)
	}
	for _, v := range p.Python3 {
		dst.Add(component.ProvidedPython3, v)
	}
	for _, v := range p.DBus {
		dst.Add(component.ProvidedDBus, v.Value)
	}
	for _, v := range p.Firmware {
		dst.Add(component.ProvidedFirmware, v.Value)
	}
	for _, v := range p.ID {
		dst.Add(component.ProvidedID, v)
	}
}

func convertReleases(r *docReleases, ctx *appstreamctx.Context) *component.ReleaseList {
	rl := &component.ReleaseList{}

	if r.Type == "external" && r.URL != "" {
		rl.ExternalURL = r.URL
	}

	for _, rel := range r.Releases {
		rl.Entries = append(rl.Entries, convertRelease(&rel, ctx))
	}

	return rl
}

func convertRelease(r *docRelease, ctx *appstreamctx.Context) *component.Release {
	out := &component.Release{
		Version:   r.Version,
		Kind:      component.ReleaseStable,
		Urgency:   component.Urgency(r.Urgency),
		Timestamp: r.Timestamp,
		Date:      r.Date,
		DateEOL:   r.DateEOL,
	}
	switch r.Type {
	case "development":
		out.Kind = component.ReleaseDevel
	case "snapshot":
		out.Kind = component.ReleaseSnapshot
	}

	if r.Description != nil {
		out.Description = component.LocalizedMarkup{}
		convertDescriptions(out.Description, []docDescription{*r.Description}, ctx)
	}

	for _, u := range r.URLs {
		if u.Type == "details" || u.Type == "" {
			out.URL = strings.TrimSpace(u.Value)
		}
	}

	for _, iss := range r.Issues {
		out.Issues = append(out.Issues, component.Issue{
			Kind: component.IssueKind(firstNonEmpty(iss.Type, string(component.IssueGeneric))),
			ID:   strings.TrimSpace(iss.Value),
			URL:  iss.URL,
		})
	}

	for _, a := range r.Artifacts {
		art := component.Artifact{
			Kind:     component.ArtifactKind(firstNonEmpty(a.Type, string(component.ArtifactBinary))),
			Platform: a.Platform,
			URL:      strings.TrimSpace(a.Location),
			Filename: a.Filename,
		}
		for _, cs := range a.Checksum {
			art.Checksums = append(art.Checksums, component.Checksum{Kind: component.ChecksumKind(cs.Type), Value: cs.Value})
		}
		for _, sz := range a.Size {
			art.Sizes = append(art.Sizes, component.Size{Kind: component.SizeKind(sz.Type), Bytes: sz.Value})
		}
		out.Artifacts = append(out.Artifacts, art)
	}

	return out
}

func firstNonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func convertRelationGroup(g *docRelationGroup, kind component.RelationKind, report *LoadReport) []*component.Relation {
	if g == nil {
		return nil
	}

	var out []*component.Relation
	for _, item := range g.Items {
		itemKind := component.ItemKind(item.XMLName.Local)
		value := strings.TrimSpace(item.Value)

		switch itemKind {
		case component.ItemFirmware, component.ItemControl:
			if item.Type != "" {
				value = item.Type
			}
		}

		switch itemKind {
		case component.ItemID, component.ItemModalias, component.ItemKernel,
			component.ItemMemory, component.ItemFirmware, component.ItemControl,
			component.ItemDisplayLen, component.ItemInternet:
			out = append(out, &component.Relation{
				Kind:        kind,
				Item:        itemKind,
				Value:       value,
				Version:     item.Version,
				Compare:     component.Compare(item.Compare),
				DisplaySide: component.DisplaySideKind(item.Side),
			})
		default:
			report.noteUnknown(fmt.Sprintf("%s>%s", kind, item.XMLName.Local))
		}
	}

	return out
}

func convertAgreement(a *docAgreement) *component.Agreement {
	out := &component.Agreement{
		Kind:    component.AgreementKind(firstNonEmpty(a.Type, string(component.AgreementGeneric))),
		ID:      a.ID,
		Version: a.Version,
	}

	for _, s := range a.Sections {
		section := component.AgreementSection{
			Title:       component.LocalizedString{},
			Description: component.LocalizedMarkup{},
		}
		for _, t := range s.Title {
			section.Title.Set(firstNonEmpty(t.Lang, "C"), strings.TrimSpace(t.Value))
		}
		for _, d := range s.Description {
			doc, err := markup.ParseHTML("<p>" + d.Value + "</p>")
			if err == nil {
				section.Description.Set(firstNonEmpty(d.Lang, "C"), doc)
			}
		}
		out.Sections = append(out.Sections, section)
	}

	return out
}

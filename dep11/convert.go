// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import (
	"strings"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
	"appstreamkit.sh/locale"
	"appstreamkit.sh/markup"
)

// filterLocale mirrors package xml's helper of the same name: it decides
// whether a parsed locale-tagged value should be kept, and under what map
// key, given the Context's configured locale. Duplicated rather than shared
// because the two codecs have no common internal package to host it in.
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

func setLocalizedMap(dst component.LocalizedString, src map[string]string, ctx *appstreamctx.Context) {
	for lang, v := range src {
		key, keep := filterLocale(ctx.Locale(), lang)
		if !keep {
			continue
		}
		dst.Set(key, strings.TrimSpace(v))
	}
}

func setLocalizedMarkupMap(dst component.LocalizedMarkup, src map[string]string, ctx *appstreamctx.Context) {
	for lang, html := range src {
		key, keep := filterLocale(ctx.Locale(), lang)
		if !keep {
			continue
		}
		doc, err := markup.ParseHTML(html)
		if err != nil {
			continue
		}
		dst.Set(key, doc)
	}
}

func convertYAMLComponent(yc *yamlComponent, ctx *appstreamctx.Context, report *LoadReport) *component.Component {
	c := &component.Component{
		ID:                   yc.ID,
		Kind:                 component.Kind(yc.Type),
		MetadataLicense:      yc.MetadataLicense,
		ProjectLicense:       yc.ProjectLicense,
		ProjectGroup:         yc.ProjectGroup,
		Extends:              yc.Extends,
		Name:                 component.LocalizedString{},
		Summary:              component.LocalizedString{},
		Description:          component.LocalizedMarkup{},
		Keywords:             component.LocalizedStringList{},
		URLs:                 map[component.URLKind]string{},
		Provided:             component.Provided{},
		Bundles:              component.Bundles{},
		Launchables:          component.Launchables{},
		PkgNames:             nonEmptySlice(yc.Package),
		SourcePkgName:        yc.SourcePackage,
		Replaces:             yc.Replaces,
		CompulsoryForDesktop: yc.CompulsoryForDesktops,
	}
	if c.Kind == "" {
		c.Kind = component.KindGeneric
	}

	setLocalizedMap(c.Name, yc.Name, ctx)
	setLocalizedMap(c.Summary, yc.Summary, ctx)
	setLocalizedMarkupMap(c.Description, yc.Description, ctx)

	for lang, kws := range yc.Keywords {
		key, keep := filterLocale(ctx.Locale(), lang)
		if !keep {
			continue
		}
		c.Keywords.Set(key, kws)
	}

	if len(yc.Categories) > 0 {
		cs, err := component.NewCategorySet(nil, yc.Categories...)
		if err == nil {
			c.Categories = cs
		}
	}

	for kind, v := range yc.Url {
		c.URLs[component.URLKind(kind)] = v
	}

	if yc.Icon != nil {
		if yc.Icon.Stock != "" {
			c.Icons = append(c.Icons, &component.Icon{Kind: component.IconStock, Value: yc.Icon.Stock})
		}
		for _, e := range yc.Icon.Cached {
			c.Icons = append(c.Icons, &component.Icon{Kind: component.IconCached, Value: e.Name, Width: e.Width, Height: e.Height, Scale: e.Scale})
		}
		for _, e := range yc.Icon.Local {
			c.Icons = append(c.Icons, &component.Icon{Kind: component.IconLocal, Value: e.Name, Width: e.Width, Height: e.Height, Scale: e.Scale})
		}
		for _, e := range yc.Icon.Remote {
			c.Icons = append(c.Icons, &component.Icon{Kind: component.IconRemote, Value: e.Name, Width: e.Width, Height: e.Height, Scale: e.Scale})
		}
	}

	for _, s := range yc.Screenshots {
		c.Screenshots = append(c.Screenshots, convertYAMLScreenshot(&s, ctx))
	}

	for kind, values := range yc.Launchable {
		for _, v := range values {
			c.Launchables.Add(component.LaunchableKind(kind), v)
		}
	}

	if yc.Provides != nil {
		p := yc.Provides
		for _, v := range p.Binaries {
			c.Provided.Add(component.ProvidedBinary, v)
		}
		for _, v := range p.Libraries {
			c.Provided.Add(component.ProvidedLibrary, v)
		}
		for _, v := range p.Mimetypes {
			c.Provided.Add(component.ProvidedMimetype, v)
		}
		for _, v := range p.Fonts {
			c.Provided.Add(component.ProvidedFont, v)
		}
		for _, v := range p.Modaliases {
			c.Provided.Add(component.ProvidedModalias, v)
		}
		for _, v := range p.Python3 {
			c.Provided.Add(component.ProvidedPython3, v)
		}
		for _, v := range p.DBus {
			c.Provided.Add(component.ProvidedDBus, v.Service)
		}
		for _, v := range p.IDs {
			c.Provided.Add(component.ProvidedID, v)
		}
	}

	for _, b := range yc.Bundles {
		c.Bundles[component.BundleKind(b.Type)] = b.ID
	}

	if len(yc.Releases) > 0 {
		rl := &component.ReleaseList{}
		for _, r := range yc.Releases {
			rl.Entries = append(rl.Entries, convertYAMLRelease(&r, ctx))
		}
		c.Releases = rl
	}

	c.Relations = append(c.Relations, convertYAMLRelationItems(yc.Requires, component.RelationRequires)...)
	c.Relations = append(c.Relations, convertYAMLRelationItems(yc.Recommends, component.RelationRecommends)...)
	c.Relations = append(c.Relations, convertYAMLRelationItems(yc.Supports, component.RelationSupports)...)

	for system, attrs := range yc.ContentRating {
		cr := &component.ContentRating{Kind: system, Attributes: map[string]component.RatingKind{}}
		for id, v := range attrs {
			cr.Attributes[id] = component.RatingKind(v)
		}
		c.ContentRating = append(c.ContentRating, cr)
	}

	if yc.Branding != nil {
		b := &component.Branding{}
		for _, col := range yc.Branding.Colors {
			b.Add(component.ColorKind(col.Type), component.SchemePreference(col.SchemePreference), col.Value)
		}
		c.Branding = b
	}

	for _, t := range yc.Tags {
		c.Tags = append(c.Tags, component.Tag{Namespace: t.Namespace, Value: t.Tag})
	}

	for _, tr := range yc.Translation {
		c.Translations = append(c.Translations, &component.Translation{Kind: component.TranslationKind(tr.Type), Domain: tr.ID})
	}

	for _, sg := range yc.Suggests {
		c.Suggested = append(c.Suggested, &component.Suggested{Kind: component.SuggestedKind(sg.Type), IDs: sg.IDs})
	}

	for _, ag := range yc.Agreements {
		c.Agreements = append(c.Agreements, convertYAMLAgreement(&ag, ctx))
	}

	if len(yc.DeveloperName) > 0 {
		dev := &component.Developer{Name: component.LocalizedString{}}
		setLocalizedMap(dev.Name, yc.DeveloperName, ctx)
		c.Developer = dev
	}

	if len(yc.Languages) > 0 {
		c.Languages = map[string]int{}
		for _, l := range yc.Languages {
			c.Languages[l.Locale] = l.Percentage
		}
	}

	if len(yc.Custom) > 0 {
		c.Custom = map[string]string{}
		for k, v := range yc.Custom {
			c.Custom[k] = v
		}
	}

	return c
}

func nonEmptySlice(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func convertYAMLScreenshot(s *yamlScreenshot, ctx *appstreamctx.Context) *component.Screenshot {
	out := &component.Screenshot{Kind: component.ScreenshotExtra, Caption: component.LocalizedString{}}
	if s.Default {
		out.Kind = component.ScreenshotDefault
	}
	setLocalizedMap(out.Caption, s.Caption, ctx)

	if s.SourceImage != nil {
		out.Images = append(out.Images, component.Image{
			Kind: component.ImageSource, URL: s.SourceImage.URL,
			Width: s.SourceImage.Width, Height: s.SourceImage.Height, Locale: s.SourceImage.Locale,
		})
	}
	for _, t := range s.Thumbnails {
		out.Images = append(out.Images, component.Image{Kind: component.ImageThumbnail, URL: t.URL, Width: t.Width, Height: t.Height, Locale: t.Locale})
	}
	for _, v := range s.Videos {
		out.Videos = append(out.Videos, component.Video{
			Codec: component.VideoCodec(v.Codec), Container: component.VideoContainer(v.Container),
			URL: v.URL, Width: v.Width, Height: v.Height,
		})
	}

	return out
}

func convertYAMLRelease(r *yamlRelease, ctx *appstreamctx.Context) *component.Release {
	out := &component.Release{
		Version:   r.Version,
		Kind:      component.ReleaseStable,
		Urgency:   component.Urgency(r.Urgency),
		Timestamp: r.UnixTimestamp,
		Date:      r.Date,
		DateEOL:   r.DateEOL,
		URL:       r.URL,
	}
	switch r.Type {
	case "development":
		out.Kind = component.ReleaseDevel
	case "snapshot":
		out.Kind = component.ReleaseSnapshot
	}

	if len(r.Description) > 0 {
		out.Description = component.LocalizedMarkup{}
		setLocalizedMarkupMap(out.Description, r.Description, ctx)
	}

	for _, iss := range r.Issues {
		kind := component.IssueGeneric
		if iss.Type != "" {
			kind = component.IssueKind(iss.Type)
		}
		out.Issues = append(out.Issues, component.Issue{Kind: kind, ID: iss.ID, URL: iss.URL})
	}

	for _, a := range r.Artifacts {
		art := component.Artifact{
			Kind:     component.ArtifactKind(firstNonEmptyStr(a.Type, string(component.ArtifactBinary))),
			Platform: a.Platform,
			Filename: a.Filename,
		}
		if len(a.Locations) > 0 {
			art.URL = a.Locations[0]
		}
		for kind, v := range a.Checksum {
			art.Checksums = append(art.Checksums, component.Checksum{Kind: component.ChecksumKind(kind), Value: v})
		}
		for kind, v := range a.Size {
			art.Sizes = append(art.Sizes, component.Size{Kind: component.SizeKind(kind), Bytes: v})
		}
		out.Artifacts = append(out.Artifacts, art)
	}

	return out
}

func convertYAMLRelationItems(items []yamlRelationItem, kind component.RelationKind) []*component.Relation {
	var out []*component.Relation
	for _, it := range items {
		out = append(out, &component.Relation{
			Kind:        kind,
			Item:        component.ItemKind(it.Kind),
			Value:       it.Value,
			Version:     it.Version,
			Compare:     component.Compare(it.Compare),
			DisplaySide: component.DisplaySideKind(it.Side),
		})
	}
	return out
}

func convertYAMLAgreement(a *yamlAgreement, ctx *appstreamctx.Context) *component.Agreement {
	out := &component.Agreement{
		Kind:    component.AgreementKind(firstNonEmptyStr(a.Type, string(component.AgreementGeneric))),
		ID:      a.ID,
		Version: a.Version,
	}
	for _, s := range a.Sections {
		section := component.AgreementSection{Title: component.LocalizedString{}, Description: component.LocalizedMarkup{}}
		setLocalizedMap(section.Title, s.Title, ctx)
		setLocalizedMarkupMap(section.Description, s.Description, ctx)
		out.Sections = append(out.Sections, section)
	}
	return out
}

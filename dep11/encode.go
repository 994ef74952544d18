// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
)

// Encode serializes header and components back into a DEP-11 multi-document
// YAML stream, the header first.
func Encode(header *Header, components []*component.Component, ctx *appstreamctx.Context) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(header); err != nil {
		return nil, err
	}

	for _, c := range components {
		if err := enc.Encode(emitYAMLComponent(c)); err != nil {
			return nil, err
		}
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func emitYAMLComponent(c *component.Component) *yamlComponent {
	yc := &yamlComponent{
		Type:            string(c.Kind),
		ID:              c.ID,
		SourcePackage:   c.SourcePkgName,
		Extends:         c.Extends,
		MetadataLicense: c.MetadataLicense,
		ProjectLicense:  c.ProjectLicense,
		ProjectGroup:    c.ProjectGroup,
	}
	if len(c.PkgNames) > 0 {
		yc.Package = c.PkgNames[0]
	}

	yc.Name = emitLocalizedMap(c.Name)
	yc.Summary = emitLocalizedMap(c.Summary)
	yc.Description = emitLocalizedMarkupMap(c.Description)

	if len(c.Keywords) > 0 {
		yc.Keywords = map[string][]string{}
		for _, tag := range c.Keywords.SortedKeys() {
			values, _ := c.Keywords.Get(tag)
			yc.Keywords[tag] = values
		}
	}

	if c.Categories != nil {
		yc.Categories = c.Categories.Sorted()
	}

	if len(c.URLs) > 0 {
		yc.Url = map[string]string{}
		for kind, v := range c.URLs {
			yc.Url[string(kind)] = v
		}
	}

	yc.Icon = emitYAMLIconSet(c.Icons)

	for _, kind := range c.Bundles.SortedKinds() {
		yc.Bundles = append(yc.Bundles, yamlBundle{Type: string(kind), ID: c.Bundles[kind]})
	}

	if len(c.Launchables) > 0 {
		yc.Launchable = map[string][]string{}
		for _, kind := range c.Launchables.SortedKinds() {
			yc.Launchable[string(kind)] = c.Launchables[kind]
		}
	}

	if len(c.Provided) > 0 {
		yc.Provides = emitYAMLProvides(c.Provided)
	}

	for _, s := range c.Screenshots {
		yc.Screenshots = append(yc.Screenshots, emitYAMLScreenshot(s))
	}

	if c.Releases != nil {
		for _, r := range c.Releases.Entries {
			yc.Releases = append(yc.Releases, emitYAMLRelease(r))
		}
	}

	yc.Requires = emitYAMLRelationItems(c.Relations, component.RelationRequires)
	yc.Recommends = emitYAMLRelationItems(c.Relations, component.RelationRecommends)
	yc.Supports = emitYAMLRelationItems(c.Relations, component.RelationSupports)

	for _, cr := range c.ContentRating {
		if yc.ContentRating == nil {
			yc.ContentRating = map[string]map[string]string{}
		}
		attrs := map[string]string{}
		for id, v := range cr.Attributes {
			attrs[id] = string(v)
		}
		yc.ContentRating[cr.Kind] = attrs
	}

	if c.Branding != nil {
		yc.Branding = &yamlBranding{}
		for _, scheme := range []component.SchemePreference{component.SchemeLight, component.SchemeDark} {
			if v, ok := c.Branding.Lookup(component.ColorPrimary, scheme); ok {
				yc.Branding.Colors = append(yc.Branding.Colors, yamlColor{
					Type: string(component.ColorPrimary), SchemePreference: string(scheme), Value: v,
				})
			}
		}
	}

	for _, t := range c.Tags {
		yc.Tags = append(yc.Tags, yamlTag{Namespace: t.Namespace, Tag: t.Value})
	}

	for _, tr := range c.Translations {
		yc.Translation = append(yc.Translation, yamlTranslation{Type: string(tr.Kind), ID: tr.Domain})
	}

	for _, sg := range c.Suggested {
		yc.Suggests = append(yc.Suggests, yamlSuggests{Type: string(sg.Kind), IDs: sg.IDs})
	}

	for _, ag := range c.Agreements {
		yc.Agreements = append(yc.Agreements, emitYAMLAgreement(ag))
	}

	if c.Developer != nil {
		yc.DeveloperName = emitLocalizedMap(c.Developer.Name)
	}

	yc.Replaces = c.Replaces
	yc.CompulsoryForDesktops = c.CompulsoryForDesktop

	if len(c.Languages) > 0 {
		for _, locale := range sortedStringKeys(c.Languages) {
			yc.Languages = append(yc.Languages, yamlLang{Locale: locale, Percentage: c.Languages[locale]})
		}
	}

	if len(c.Custom) > 0 {
		yc.Custom = map[string]string{}
		for k, v := range c.Custom {
			yc.Custom[k] = v
		}
	}

	return yc
}

// sortedStringKeys returns m's keys (Languages locales) in deterministic
// order so repeated Encode calls produce byte-identical output.
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

func emitLocalizedMap(m component.LocalizedString) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := map[string]string{}
	for _, tag := range m.SortedKeys() {
		v, _ := m.Get(tag)
		out[tag] = v
	}
	return out
}

func emitLocalizedMarkupMap(m component.LocalizedMarkup) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := map[string]string{}
	for _, tag := range m.SortedKeys() {
		doc, _ := m.Get(tag)
		out[tag] = doc.Markdown()
	}
	return out
}

func emitYAMLIconSet(icons []*component.Icon) *yamlIconSet {
	if len(icons) == 0 {
		return nil
	}

	set := &yamlIconSet{}
	for _, icon := range icons {
		entry := yamlIconEntry{Name: icon.Value, Width: icon.Width, Height: icon.Height, Scale: icon.Scale}
		switch icon.Kind {
		case component.IconStock:
			set.Stock = icon.Value
		case component.IconCached:
			set.Cached = append(set.Cached, entry)
		case component.IconLocal:
			set.Local = append(set.Local, entry)
		case component.IconRemote:
			set.Remote = append(set.Remote, entry)
		}
	}
	return set
}

func emitYAMLProvides(p component.Provided) *yamlProvides {
	out := &yamlProvides{}
	for _, kind := range p.SortedKinds() {
		values := p[kind].Sorted()
		switch kind {
		case component.ProvidedBinary:
			out.Binaries = values
		case component.ProvidedLibrary:
			out.Libraries = values
		case component.ProvidedMimetype:
			out.Mimetypes = values
		case component.ProvidedFont:
			out.Fonts = values
		case component.ProvidedModalias:
			out.Modaliases = values
		case component.ProvidedPython3:
			out.Python3 = values
		case component.ProvidedID:
			out.IDs = values
		case component.ProvidedDBus:
			for _, v := range values {
				out.DBus = append(out.DBus, yamlDBusProvide{Service: v})
			}
		}
	}
	return out
}

func emitYAMLScreenshot(s *component.Screenshot) yamlScreenshot {
	out := yamlScreenshot{Default: s.Kind == component.ScreenshotDefault, Caption: emitLocalizedMap(s.Caption)}

	for _, img := range s.Images {
		entry := yamlImage{URL: img.URL, Width: img.Width, Height: img.Height, Locale: img.Locale}
		if img.Kind == component.ImageSource && out.SourceImage == nil {
			e := entry
			out.SourceImage = &e
			continue
		}
		out.Thumbnails = append(out.Thumbnails, entry)
	}

	for _, v := range s.Videos {
		out.Videos = append(out.Videos, yamlVideo{URL: v.URL, Codec: string(v.Codec), Container: string(v.Container), Width: v.Width, Height: v.Height})
	}

	return out
}

func emitYAMLRelease(r *component.Release) yamlRelease {
	out := yamlRelease{
		Version: r.Version, UnixTimestamp: r.Timestamp, Date: r.Date, DateEOL: r.DateEOL,
		Urgency: string(r.Urgency), URL: r.URL,
	}
	switch r.Kind {
	case component.ReleaseDevel:
		out.Type = "development"
	case component.ReleaseSnapshot:
		out.Type = "snapshot"
	}
	if len(r.Description) > 0 {
		out.Description = emitLocalizedMarkupMap(r.Description)
	}
	for _, iss := range r.Issues {
		out.Issues = append(out.Issues, yamlIssue{ID: iss.ID, Type: string(iss.Kind), URL: iss.URL})
	}
	for _, a := range r.Artifacts {
		art := yamlArtifact{Type: string(a.Kind), Platform: a.Platform, Filename: a.Filename}
		if a.URL != "" {
			art.Locations = []string{a.URL}
		}
		if len(a.Checksums) > 0 {
			art.Checksum = map[string]string{}
			for _, cs := range a.Checksums {
				art.Checksum[string(cs.Kind)] = cs.Value
			}
		}
		if len(a.Sizes) > 0 {
			art.Size = map[string]uint64{}
			for _, sz := range a.Sizes {
				art.Size[string(sz.Kind)] = sz.Bytes
			}
		}
		out.Artifacts = append(out.Artifacts, art)
	}
	return out
}

func emitYAMLRelationItems(relations []*component.Relation, kind component.RelationKind) []yamlRelationItem {
	var out []yamlRelationItem
	for _, r := range relations {
		if r.Kind != kind {
			continue
		}
		out = append(out, yamlRelationItem{
			Kind: string(r.Item), Value: r.Value, Version: r.Version,
			Compare: string(r.Compare), Side: string(r.DisplaySide),
		})
	}
	return out
}

func emitYAMLAgreement(a *component.Agreement) yamlAgreement {
	out := yamlAgreement{Type: string(a.Kind), ID: a.ID, Version: a.Version}
	for _, s := range a.Sections {
		out.Sections = append(out.Sections, yamlAgreementSection{
			Title:       emitLocalizedMap(s.Title),
			Description: emitLocalizedMarkupMap(s.Description),
		})
	}
	return out
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

import (
	"reflect"

	"appstreamkit.sh/component"
)

// applyMerge folds incoming onto existing per spec.md §4.6: append copies
// only what existing is missing, replace overwrites every non-empty field
// incoming carries. Both variants leave existing's own identity (ID, Kind,
// data-id-determining fields) untouched — merge never changes which bucket
// a component lives in, only its content.
func applyMerge(existing, incoming *component.Component, kind component.MergeKind) {
	if kind == component.MergeReplace {
		replaceFields(existing, incoming)
		return
	}
	appendFields(existing, incoming)
}

func replaceFields(existing, incoming *component.Component) {
	if incoming.Priority != 0 {
		existing.Priority = incoming.Priority
	}
	if len(incoming.Name) > 0 {
		existing.Name = incoming.Name
	}
	if len(incoming.Summary) > 0 {
		existing.Summary = incoming.Summary
	}
	if len(incoming.Description) > 0 {
		existing.Description = incoming.Description
	}
	if incoming.MetadataLicense != "" {
		existing.MetadataLicense = incoming.MetadataLicense
	}
	if incoming.ProjectLicense != "" {
		existing.ProjectLicense = incoming.ProjectLicense
	}
	if incoming.ProjectGroup != "" {
		existing.ProjectGroup = incoming.ProjectGroup
	}
	if len(incoming.Keywords) > 0 {
		existing.Keywords = incoming.Keywords
	}
	if incoming.Categories != nil {
		existing.Categories = incoming.Categories
	}
	if len(incoming.URLs) > 0 {
		existing.URLs = incoming.URLs
	}
	if len(incoming.Icons) > 0 {
		existing.Icons = incoming.Icons
	}
	if len(incoming.Screenshots) > 0 {
		existing.Screenshots = incoming.Screenshots
	}
	if incoming.Releases != nil {
		existing.Releases = incoming.Releases
	}
	if len(incoming.Provided) > 0 {
		existing.Provided = incoming.Provided
	}
	if len(incoming.Bundles) > 0 {
		existing.Bundles = incoming.Bundles
	}
	if len(incoming.Launchables) > 0 {
		existing.Launchables = incoming.Launchables
	}
	if len(incoming.Relations) > 0 {
		existing.Relations = incoming.Relations
	}
	if incoming.Developer != nil {
		existing.Developer = incoming.Developer
	}
	if len(incoming.ContentRating) > 0 {
		existing.ContentRating = incoming.ContentRating
	}
	if len(incoming.Suggested) > 0 {
		existing.Suggested = incoming.Suggested
	}
	if len(incoming.Translations) > 0 {
		existing.Translations = incoming.Translations
	}
	if incoming.Branding != nil {
		existing.Branding = incoming.Branding
	}
	if len(incoming.Agreements) > 0 {
		existing.Agreements = incoming.Agreements
	}
	if len(incoming.Reviews) > 0 {
		existing.Reviews = incoming.Reviews
	}
	if len(incoming.Tags) > 0 {
		existing.Tags = incoming.Tags
	}
	if len(incoming.Extends) > 0 {
		existing.Extends = incoming.Extends
	}
	if len(incoming.PkgNames) > 0 {
		existing.PkgNames = incoming.PkgNames
	}
	if incoming.SourcePkgName != "" {
		existing.SourcePkgName = incoming.SourcePkgName
	}
	if incoming.Architecture != "" {
		existing.Architecture = incoming.Architecture
	}
	if incoming.Branch != "" {
		existing.Branch = incoming.Branch
	}
}

func appendFields(existing, incoming *component.Component) {
	if existing.Name == nil {
		existing.Name = component.LocalizedString{}
	}
	if existing.Summary == nil {
		existing.Summary = component.LocalizedString{}
	}
	if existing.Description == nil {
		existing.Description = component.LocalizedMarkup{}
	}
	if existing.Keywords == nil {
		existing.Keywords = component.LocalizedStringList{}
	}

	for _, tag := range incoming.Name.SortedKeys() {
		if _, ok := existing.Name[tag]; !ok {
			v, _ := incoming.Name.Get(tag)
			existing.Name.Set(tag, v)
		}
	}
	for _, tag := range incoming.Summary.SortedKeys() {
		if _, ok := existing.Summary[tag]; !ok {
			v, _ := incoming.Summary.Get(tag)
			existing.Summary.Set(tag, v)
		}
	}
	for _, tag := range incoming.Description.SortedKeys() {
		if _, ok := existing.Description[tag]; !ok {
			v, _ := incoming.Description.Get(tag)
			existing.Description.Set(tag, v)
		}
	}
	for _, tag := range incoming.Keywords.SortedKeys() {
		if _, ok := existing.Keywords[tag]; !ok {
			v, _ := incoming.Keywords.Get(tag)
			existing.Keywords.Set(tag, v)
		}
	}

	if existing.MetadataLicense == "" {
		existing.MetadataLicense = incoming.MetadataLicense
	}
	if existing.ProjectLicense == "" {
		existing.ProjectLicense = incoming.ProjectLicense
	}
	if existing.ProjectGroup == "" {
		existing.ProjectGroup = incoming.ProjectGroup
	}
	if existing.SourcePkgName == "" {
		existing.SourcePkgName = incoming.SourcePkgName
	}
	if existing.Architecture == "" {
		existing.Architecture = incoming.Architecture
	}
	if existing.Branch == "" {
		existing.Branch = incoming.Branch
	}

	if existing.Categories == nil {
		existing.Categories = incoming.Categories
	} else if incoming.Categories != nil {
		for _, name := range incoming.Categories.Names() {
			_ = existing.Categories.Add(name)
		}
	}

	if existing.URLs == nil {
		existing.URLs = map[component.URLKind]string{}
	}
	for k, v := range incoming.URLs {
		if _, ok := existing.URLs[k]; !ok {
			existing.URLs[k] = v
		}
	}

	existing.Icons = appendUnique(existing.Icons, incoming.Icons)
	existing.Screenshots = appendUnique(existing.Screenshots, incoming.Screenshots)
	existing.ContentRating = appendUnique(existing.ContentRating, incoming.ContentRating)
	existing.Suggested = appendUnique(existing.Suggested, incoming.Suggested)
	existing.Translations = appendUnique(existing.Translations, incoming.Translations)
	existing.Agreements = appendUnique(existing.Agreements, incoming.Agreements)
	existing.Reviews = appendUnique(existing.Reviews, incoming.Reviews)
	existing.Relations = appendUnique(existing.Relations, incoming.Relations)
	existing.Extends = appendUniqueString(existing.Extends, incoming.Extends)
	existing.PkgNames = appendUniqueString(existing.PkgNames, incoming.PkgNames)

	for _, t := range incoming.Tags {
		found := false
		for _, e := range existing.Tags {
			if e.Namespace == t.Namespace && e.Value == t.Value {
				found = true
				break
			}
		}
		if !found {
			existing.Tags = append(existing.Tags, t)
		}
	}

	if existing.Provided == nil {
		existing.Provided = component.Provided{}
	}
	for kind, set := range incoming.Provided {
		for _, v := range set.Values() {
			existing.Provided.Add(kind, v)
		}
	}

	if existing.Bundles == nil {
		existing.Bundles = component.Bundles{}
	}
	for kind, id := range incoming.Bundles {
		if _, ok := existing.Bundles[kind]; !ok {
			existing.Bundles[kind] = id
		}
	}

	if existing.Launchables == nil {
		existing.Launchables = component.Launchables{}
	}
	for kind, values := range incoming.Launchables {
		for _, v := range values {
			if !containsString(existing.Launchables[kind], v) {
				existing.Launchables.Add(kind, v)
			}
		}
	}

	if existing.Releases == nil {
		existing.Releases = incoming.Releases
	} else if incoming.Releases != nil {
		seen := map[string]bool{}
		for _, r := range existing.Releases.Entries {
			seen[r.Version] = true
		}
		for _, r := range incoming.Releases.Entries {
			if !seen[r.Version] {
				existing.Releases.Entries = append(existing.Releases.Entries, r)
				seen[r.Version] = true
			}
		}
		if existing.Releases.ExternalURL == "" {
			existing.Releases.ExternalURL = incoming.Releases.ExternalURL
		}
	}

	if existing.Developer == nil {
		existing.Developer = incoming.Developer
	} else if incoming.Developer != nil {
		if existing.Developer.ID == "" {
			existing.Developer.ID = incoming.Developer.ID
		}
		if existing.Developer.Name == nil {
			existing.Developer.Name = component.LocalizedString{}
		}
		for _, tag := range incoming.Developer.Name.SortedKeys() {
			if _, ok := existing.Developer.Name[tag]; !ok {
				v, _ := incoming.Developer.Name.Get(tag)
				existing.Developer.Name.Set(tag, v)
			}
		}
	}

	if existing.Branding == nil {
		existing.Branding = incoming.Branding
	} else if incoming.Branding != nil {
		for _, entry := range incoming.Branding.Entries() {
			if _, ok := existing.Branding.Lookup(entry.Kind, entry.Scheme); !ok {
				existing.Branding.Add(entry.Kind, entry.Scheme, entry.Value)
			}
		}
	}
}

// appendUnique union-appends src onto dst, skipping elements deeply equal to
// one already present; used for the slice-of-struct/pointer fields where a
// dedicated identity key would be more code than it's worth.
func appendUnique[T any](dst, src []T) []T {
	for _, v := range src {
		dup := false
		for _, existing := range dst {
			if reflect.DeepEqual(existing, v) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

func appendUniqueString(dst, src []string) []string {
	for _, v := range src {
		if !containsString(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

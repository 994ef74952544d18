// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package component implements the AppStream data model: Component and the
// entity families it owns (releases, screenshots, icons, relations,
// provided items, bundles, launchables, content ratings, branding and more).
package component

import (
	"fmt"
	"strings"
)

// Kind enumerates the component types AppStream defines.
type Kind string

const (
	KindUnknown        Kind = "unknown"
	KindGeneric        Kind = "generic"
	KindDesktopApp     Kind = "desktop-application"
	KindConsoleApp     Kind = "console-application"
	KindWebApp         Kind = "web-application"
	KindAddon          Kind = "addon"
	KindFont           Kind = "font"
	KindCodec          Kind = "codec"
	KindInputMethod    Kind = "inputmethod"
	KindFirmware       Kind = "firmware"
	KindDriver         Kind = "driver"
	KindLocalization   Kind = "localization"
	KindService        Kind = "service"
	KindRepository     Kind = "repository"
	KindOperatingSys   Kind = "operating-system"
	KindIconTheme      Kind = "icon-theme"
	KindRuntime        Kind = "runtime"
)

var validKinds = map[Kind]bool{
	KindGeneric: true, KindDesktopApp: true, KindConsoleApp: true,
	KindWebApp: true, KindAddon: true, KindFont: true, KindCodec: true,
	KindInputMethod: true, KindFirmware: true, KindDriver: true,
	KindLocalization: true, KindService: true, KindRepository: true,
	KindOperatingSys: true, KindIconTheme: true, KindRuntime: true,
}

// Scope distinguishes system-wide from per-user components (spec §3).
type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeUser   Scope = "user"
)

// MergeKind controls how a component from a lower-priority source is merged
// into one already present in a Pool (spec §4.6).
type MergeKind string

const (
	MergeNone     MergeKind = "none"
	MergeReplace  MergeKind = "replace"
	MergeAppend   MergeKind = "append"
	MergeRemove   MergeKind = "remove-component"
)

// Component is the central AppStream entity: one installable or describable
// piece of software and everything known about it.
type Component struct {
	ID     string
	Kind   Kind
	Scope  Scope
	Origin string
	Merge  MergeKind

	Priority int

	Name        LocalizedString
	Summary     LocalizedString
	Description LocalizedMarkup

	MetadataLicense string
	ProjectLicense  string
	ProjectGroup    string

	Keywords   LocalizedStringList
	Categories *CategorySet

	URLs map[URLKind]string

	Icons       []*Icon
	Screenshots []*Screenshot

	Releases *ReleaseList

	Provided    Provided
	Bundles     Bundles
	Launchables Launchables

	Relations []*Relation

	Developer     *Developer
	ContentRating []*ContentRating
	Suggested     []*Suggested
	Translations  []*Translation
	Branding      *Branding
	Agreements    []*Agreement
	Reviews       []*Review

	Tags []Tag

	Extends  []string
	PkgNames []string

	// Replaces lists the ids of components this one supersedes, the inverse
	// of Extends' addon relationship: a catalog lists it so a package
	// manager can drop the superseded id once this one is installed.
	Replaces []string

	// Languages maps a locale to the percentage of this component's strings
	// translated into it, as reported by the upstream metainfo file.
	Languages map[string]int

	// CompulsoryForDesktop lists the desktop environment ids (e.g. "GNOME",
	// "KDE") this component cannot be removed from without breaking the
	// session.
	CompulsoryForDesktop []string

	// Custom carries a catalog's <custom>/Custom key/value pairs verbatim,
	// opaque to this module but preserved for consumers that key off them.
	Custom map[string]string

	// Architecture is the component's declared hardware architecture, when
	// a catalog carries per-arch variants of the same id ("x86_64", "noarch",
	// ...); empty means architecture-independent.
	Architecture string

	// Addons is populated by Pool.Refine: the ids of components whose
	// <extends> names this component's id.
	Addons []string

	// Branch is the optional version/channel string distinguishing, e.g.,
	// a "stable" from a "testing" build of the same id within one origin.
	Branch string

	// SourcePkgName is the source package this binary component was built
	// from, when the catalog backend tracks that distinction.
	SourcePkgName string

	// Hidden is set by Pool.Refine when validation finds the component
	// unusable (e.g. missing a required field); it is kept in the pool for
	// diagnostics but excluded from query results by default.
	Hidden bool
}

// URLKind enumerates the <url type="..."> values spec.md §4.3 recognizes.
type URLKind string

const (
	URLHomepage     URLKind = "homepage"
	URLBugtracker   URLKind = "bugtracker"
	URLFAQ          URLKind = "faq"
	URLHelp         URLKind = "help"
	URLDonation     URLKind = "donation"
	URLTranslate    URLKind = "translate"
	URLContact      URLKind = "contact"
	URLVCSBrowser   URLKind = "vcs-browser"
	URLContribute   URLKind = "contribute"
)

// DataID computes the data-id AppStream uses to identify a component for
// merge purposes: a total, pure function of (scope, bundle_kind, origin, id,
// branch), never of mutable content like description (spec.md §4.6/§8
// property 6). Missing parts are replaced by "*". Bundles is multi-valued
// on Component (a component may ship as both a flatpak and a snap), so
// bundle_kind here is the lexicographically first bundle kind present — a
// deliberate, documented simplification of the one-bundle-per-component
// model the formula assumes.
func DataID(c *Component) string {
	scope := wildcardIfEmpty(string(c.Scope))

	bundleKind := "*"
	if kinds := c.Bundles.SortedKinds(); len(kinds) > 0 {
		bundleKind = string(kinds[0])
	}

	origin := wildcardIfEmpty(c.Origin)
	id := wildcardIfEmpty(c.ID)
	branch := wildcardIfEmpty(c.Branch)

	return strings.Join([]string{scope, bundleKind, origin, id, branch}, "/")
}

func wildcardIfEmpty(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

// Validate checks the required-field invariants spec.md §3/§4.2 place on a
// component (is_valid()).
func (c *Component) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("component missing id")
	}

	if !validKinds[c.Kind] {
		return fmt.Errorf("component %q has invalid kind %q", c.ID, c.Kind)
	}

	if _, ok := c.Name["C"]; !ok && len(c.Name) == 0 {
		return fmt.Errorf("component %q missing name", c.ID)
	}

	switch c.Kind {
	case KindDesktopApp:
		if len(c.Launchables[LaunchableDesktopID]) == 0 {
			return fmt.Errorf("component %q of kind desktop-application missing a desktop-id launchable", c.ID)
		}
	case KindFont:
		if len(c.Provided[ProvidedFont].Values()) == 0 {
			return fmt.Errorf("component %q of kind font missing provided font", c.ID)
		}
	}

	return nil
}

// NameAndVersion renders a human-readable "name (version)" summary, falling
// back to the component ID when no C-locale name is set.
func (c *Component) NameAndVersion() string {
	name, ok := c.Name.Get("C")
	if !ok {
		name = c.ID
	}

	if c.Releases != nil && len(c.Releases.Entries) > 0 {
		return fmt.Sprintf("%s (%s)", name, c.Releases.Entries[0].Version)
	}

	return name
}

func (c *Component) String() string {
	return fmt.Sprintf("%s[%s]", c.ID, c.Kind)
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package dep11 implements the DEP-11 YAML codec: a multi-document YAML
// stream whose first document is a catalog Header and every subsequent
// document is one component, with the CamelCase key vocabulary spec.md
// §4.4 enumerates. It mirrors package xml's structure (raw wire types plus
// a conversion layer to/from appstreamkit.sh/component), built on
// gopkg.in/yaml.v3, whose Decoder/Encoder pair handles the multi-document
// stream.
package dep11

// Header is the DEP-11 stream's mandatory first document.
type Header struct {
	File         string `yaml:"File"`
	Version      string `yaml:"Version"`
	Origin       string `yaml:"Origin,omitempty"`
	MediaBaseURL string `yaml:"MediaBaseUrl,omitempty"`
	Architecture string `yaml:"Architecture,omitempty"`
	Priority     int    `yaml:"Priority,omitempty"`
}

type yamlIconSet struct {
	Stock  string          `yaml:"stock,omitempty"`
	Cached []yamlIconEntry `yaml:"cached,omitempty"`
	Local  []yamlIconEntry `yaml:"local,omitempty"`
	Remote []yamlIconEntry `yaml:"remote,omitempty"`
}

type yamlIconEntry struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Scale  int    `yaml:"scale,omitempty"`
}

type yamlBundle struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

type yamlDBusProvide struct {
	Type    string `yaml:"type"`
	Service string `yaml:"service"`
}

type yamlProvides struct {
	Binaries   []string          `yaml:"binaries,omitempty"`
	Libraries  []string          `yaml:"libraries,omitempty"`
	Mimetypes  []string          `yaml:"mimetypes,omitempty"`
	Fonts      []string          `yaml:"fonts,omitempty"`
	Modaliases []string          `yaml:"modaliases,omitempty"`
	Python3    []string          `yaml:"python3,omitempty"`
	DBus       []yamlDBusProvide `yaml:"dbus,omitempty"`
	IDs        []string          `yaml:"ids,omitempty"`
}

type yamlImage struct {
	URL    string `yaml:"url"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Locale string `yaml:"lang,omitempty"`
}

type yamlVideo struct {
	URL       string `yaml:"url"`
	Codec     string `yaml:"codec,omitempty"`
	Container string `yaml:"container,omitempty"`
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
}

type yamlScreenshot struct {
	Default     bool              `yaml:"default,omitempty"`
	Caption     map[string]string `yaml:"caption,omitempty"`
	SourceImage *yamlImage        `yaml:"source-image,omitempty"`
	Thumbnails  []yamlImage       `yaml:"thumbnails,omitempty"`
	Videos      []yamlVideo       `yaml:"videos,omitempty"`
}

type yamlIssue struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

type yamlArtifact struct {
	Type      string            `yaml:"type,omitempty"`
	Platform  string            `yaml:"platform,omitempty"`
	Locations []string          `yaml:"locations,omitempty"`
	Checksum  map[string]string `yaml:"checksum,omitempty"`
	Size      map[string]uint64 `yaml:"size,omitempty"`
	Filename  string            `yaml:"filename,omitempty"`
}

type yamlRelease struct {
	Version       string            `yaml:"version"`
	UnixTimestamp int64             `yaml:"unix-timestamp,omitempty"`
	Date          string            `yaml:"date,omitempty"`
	DateEOL       string            `yaml:"date-eol,omitempty"`
	Type          string            `yaml:"type,omitempty"`
	Urgency       string            `yaml:"urgency,omitempty"`
	Description   map[string]string `yaml:"description,omitempty"`
	URL           string            `yaml:"url,omitempty"`
	Issues        []yamlIssue       `yaml:"issues,omitempty"`
	Artifacts     []yamlArtifact    `yaml:"artifacts,omitempty"`
}

type yamlLang struct {
	Locale     string `yaml:"locale"`
	Percentage int    `yaml:"percentage,omitempty"`
}

type yamlSuggests struct {
	Type string   `yaml:"type,omitempty"`
	IDs  []string `yaml:"ids"`
}

type yamlTag struct {
	Namespace string `yaml:"namespace"`
	Tag       string `yaml:"tag"`
}

type yamlColor struct {
	Type             string `yaml:"type"`
	SchemePreference string `yaml:"scheme_preference,omitempty"`
	Value            string `yaml:"value"`
}

type yamlBranding struct {
	Colors []yamlColor `yaml:"colors,omitempty"`
}

type yamlTranslation struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

type yamlRelationItem struct {
	Kind    string `yaml:"kind"`
	Value   string `yaml:"value,omitempty"`
	Version string `yaml:"version,omitempty"`
	Compare string `yaml:"compare,omitempty"`
	Side    string `yaml:"side,omitempty"`
}

type yamlAgreementSection struct {
	Title       map[string]string `yaml:"title,omitempty"`
	Description map[string]string `yaml:"description,omitempty"`
}

type yamlAgreement struct {
	Type     string                 `yaml:"type,omitempty"`
	ID       string                 `yaml:"id,omitempty"`
	Version  string                 `yaml:"version,omitempty"`
	Sections []yamlAgreementSection `yaml:"sections,omitempty"`
}

// yamlComponent is one DEP-11 component document, mirroring every CamelCase key
// spec.md §4.4 enumerates.
type yamlComponent struct {
	Type                  string              `yaml:"Type"`
	ID                    string              `yaml:"ID"`
	Package               string              `yaml:"Package,omitempty"`
	SourcePackage         string              `yaml:"SourcePackage,omitempty"`
	Extends               []string            `yaml:"Extends,omitempty"`
	Replaces              []string            `yaml:"Replaces,omitempty"`
	Name                  map[string]string   `yaml:"Name"`
	Summary               map[string]string   `yaml:"Summary,omitempty"`
	Description           map[string]string   `yaml:"Description,omitempty"`
	DeveloperName         map[string]string   `yaml:"DeveloperName,omitempty"`
	MetadataLicense       string              `yaml:"MetadataLicense,omitempty"`
	ProjectLicense        string              `yaml:"ProjectLicense,omitempty"`
	ProjectGroup          string              `yaml:"ProjectGroup,omitempty"`
	Categories            []string            `yaml:"Categories,omitempty"`
	Keywords              map[string][]string `yaml:"Keywords,omitempty"`
	Url                   map[string]string   `yaml:"Url,omitempty"`
	Icon                  *yamlIconSet        `yaml:"Icon,omitempty"`
	Bundles               []yamlBundle        `yaml:"Bundles,omitempty"`
	Launchable            map[string][]string `yaml:"Launchable,omitempty"`
	Provides              *yamlProvides       `yaml:"Provides,omitempty"`
	Screenshots           []yamlScreenshot    `yaml:"Screenshots,omitempty"`
	ContentRating         map[string]map[string]string `yaml:"ContentRating,omitempty"`
	Releases              []yamlRelease       `yaml:"Releases,omitempty"`
	Languages             []yamlLang          `yaml:"Languages,omitempty"`
	Suggests              []yamlSuggests      `yaml:"Suggests,omitempty"`
	CompulsoryForDesktops []string            `yaml:"CompulsoryForDesktops,omitempty"`
	Tags                  []yamlTag           `yaml:"Tags,omitempty"`
	Branding              *yamlBranding       `yaml:"Branding,omitempty"`
	Translation           []yamlTranslation   `yaml:"Translation,omitempty"`
	Requires              []yamlRelationItem  `yaml:"Requires,omitempty"`
	Recommends            []yamlRelationItem  `yaml:"Recommends,omitempty"`
	Supports              []yamlRelationItem  `yaml:"Supports,omitempty"`
	Agreements            []yamlAgreement     `yaml:"Agreements,omitempty"`
	Custom                map[string]string   `yaml:"Custom,omitempty"`
}

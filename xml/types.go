// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package xml implements the AppStream XML codec on top of the standard
// library's encoding/xml, the same approach the AppStream-adjacent Go code
// in the wild uses (struct tags plus Unmarshal/Marshal) rather than a
// hand-rolled tokenizer. It supports both the metainfo (<component> root)
// and catalog (<components> root) dialects described by spec.md §4.3/§4.4.
package xml

import "encoding/xml"

// docText mirrors a locale-tagged text element: <name xml:lang="de">...</name>.
type docText struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// docParagraph is a single <p>/<ul>/<ol> child of a metainfo <description>,
// or a top-level block within a catalog-style per-locale <description>.
type docParagraph struct {
	XMLName xml.Name
	Lang    string   `xml:"lang,attr,omitempty"`
	Value   string   `xml:",innerxml"`
	Items   []string `xml:"li"`
}

// docDescription holds every paragraph/list child of one <description>
// element, regardless of dialect; Lang (only present in catalog style) is
// read off the element itself.
type docDescription struct {
	Lang  string         `xml:"lang,attr,omitempty"`
	Paras []docParagraph `xml:",any"`
}

type docURL struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type docIcon struct {
	Type   string `xml:"type,attr"`
	Width  int    `xml:"width,attr,omitempty"`
	Height int    `xml:"height,attr,omitempty"`
	Scale  int    `xml:"scale,attr,omitempty"`
	Value  string `xml:",chardata"`
}

type docImage struct {
	Type   string `xml:"type,attr,omitempty"`
	Width  int    `xml:"width,attr,omitempty"`
	Height int    `xml:"height,attr,omitempty"`
	Lang   string `xml:"lang,attr,omitempty"`
	Value  string `xml:",chardata"`
}

type docVideo struct {
	Codec     string `xml:"codec,attr,omitempty"`
	Container string `xml:"container,attr,omitempty"`
	Width     int    `xml:"width,attr,omitempty"`
	Height    int    `xml:"height,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type docScreenshot struct {
	Type    string     `xml:"type,attr,omitempty"`
	Caption []docText  `xml:"caption"`
	Images  []docImage `xml:"image"`
	Videos  []docVideo `xml:"video"`
	// Legacy <screenshot>url</screenshot>, no children.
	Legacy string `xml:",chardata"`
}

type docLaunchable struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type docProvides struct {
	Library   []string           `xml:"library"`
	Binary    []string           `xml:"binary"`
	Font      []string           `xml:"font"`
	Modalias  []string           `xml:"modalias"`
	Mediatype []string           `xml:"mediatype"`
	Python2   []string           `xml:"python2"`
	Python3   []string           `xml:"python3"`
	DBus      []docProvidesTyped `xml:"dbus"`
	Firmware  []docProvidesTyped `xml:"firmware"`
	ID        []string           `xml:"id"`
}

type docProvidesTyped struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type docBundle struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type docIssue struct {
	Type  string `xml:"type,attr,omitempty"`
	URL   string `xml:"url,attr,omitempty"`
	Value string `xml:",chardata"`
}

type docChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type docSize struct {
	Type  string `xml:"type,attr"`
	Value uint64 `xml:",chardata"`
}

type docArtifact struct {
	Type     string        `xml:"type,attr,omitempty"`
	Platform string        `xml:"platform,attr,omitempty"`
	Location string        `xml:"location"`
	Checksum []docChecksum `xml:"checksum"`
	Size     []docSize     `xml:"size"`
	Filename string        `xml:"filename,omitempty"`
}

type docRelease struct {
	Version     string          `xml:"version,attr"`
	Date        string          `xml:"date,attr,omitempty"`
	Timestamp   int64           `xml:"timestamp,attr,omitempty"`
	DateEOL     string          `xml:"date_eol,attr,omitempty"`
	Type        string          `xml:"type,attr,omitempty"`
	Urgency     string          `xml:"urgency,attr,omitempty"`
	Description *docDescription `xml:"description,omitempty"`
	URLs        []docURL        `xml:"url"`
	Issues      []docIssue      `xml:"issues>issue"`
	Artifacts   []docArtifact   `xml:"artifacts>artifact"`
}

type docReleases struct {
	Type     string       `xml:"type,attr,omitempty"`
	URL      string       `xml:"url,attr,omitempty"`
	Releases []docRelease `xml:"release"`
}

type docRelationItem struct {
	XMLName xml.Name
	Type    string `xml:"type,attr,omitempty"` // dbus/firmware/control variants
	Version string `xml:"version,attr,omitempty"`
	Compare string `xml:"compare,attr,omitempty"`
	Side    string `xml:"side,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type docRelationGroup struct {
	XMLName xml.Name
	Items   []docRelationItem `xml:",any"`
}

type docContentAttribute struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type docContentRating struct {
	Type       string                `xml:"type,attr,omitempty"`
	Attributes []docContentAttribute `xml:"content_attribute"`
}

type docColor struct {
	Type            string `xml:"type,attr,omitempty"`
	SchemePreference string `xml:"scheme_preference,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type docBranding struct {
	Colors []docColor `xml:"color"`
}

type docCustomValue struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type docCustom struct {
	Values []docCustomValue `xml:"value"`
}

type docLang struct {
	Percentage int    `xml:"percentage,attr,omitempty"`
	Value      string `xml:",chardata"`
}

type docTag struct {
	Namespace string `xml:"namespace,attr"`
	Value     string `xml:",chardata"`
}

type docSuggests struct {
	Type string   `xml:"type,attr,omitempty"`
	IDs  []string `xml:"id"`
}

type docTranslation struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type docAgreementSection struct {
	Title       []docText `xml:"agreement_section_title"`
	Description []docText `xml:"agreement_section_description"`
}

type docAgreement struct {
	Type     string                `xml:"type,attr,omitempty"`
	ID       string                `xml:"id,attr,omitempty"`
	Version  string                `xml:"version_id,attr,omitempty"`
	Sections []docAgreementSection `xml:"agreement_section"`
}

type docReview struct {
	ID       string `xml:"id,attr,omitempty"`
	Rating   int    `xml:"rating,attr,omitempty"`
	Locale   string `xml:"locale,attr,omitempty"`
	Version  string `xml:"version,attr,omitempty"`
	Reviewer string `xml:"reviewer_name,attr,omitempty"`
	Date     string `xml:"date,attr,omitempty"`
	Summary  string `xml:"summary"`
	Value    string `xml:",chardata"`
}

// docComponent is the root <component> element (metainfo dialect) and also
// the repeated element under a catalog <components> root.
type docComponent struct {
	XMLName xml.Name `xml:"component"`
	Type    string   `xml:"type,attr,omitempty"`
	Merge   string   `xml:"merge,attr,omitempty"`
	Priority int     `xml:"priority,attr,omitempty"`

	ID              string `xml:"id"`
	MetadataLicense string `xml:"metadata_license,omitempty"`
	ProjectLicense  string `xml:"project_license,omitempty"`
	ProjectGroup    string `xml:"project_group,omitempty"`

	Name        []docText `xml:"name"`
	Summary     []docText `xml:"summary"`
	Description []docDescription `xml:"description"`

	Keywords   []docText `xml:"keywords>keyword"`
	Categories []string  `xml:"categories>category"`

	URLs []docURL `xml:"url"`

	Icons       []docIcon       `xml:"icon"`
	Screenshots []docScreenshot `xml:"screenshots>screenshot"`

	Launchables []docLaunchable `xml:"launchable"`

	Provides *docProvides `xml:"provides"`
	Bundles  []docBundle  `xml:"bundle"`

	Releases *docReleases `xml:"releases"`

	Requires   *docRelationGroup `xml:"requires"`
	Recommends *docRelationGroup `xml:"recommends"`
	Supports   *docRelationGroup `xml:"supports"`

	ContentRatings []docContentRating `xml:"content_rating"`
	Branding       *docBranding       `xml:"branding"`
	Custom         *docCustom         `xml:"custom"`
	Languages      []docLang          `xml:"languages>lang"`
	Tags           []docTag           `xml:"tags>tag"`

	Extends  []string `xml:"extends"`
	Replaces []string `xml:"replaces>id"`

	Mimetypes            []string         `xml:"mimetypes>mimetype"`
	CompulsoryForDesktop []string         `xml:"compulsory_for_desktop"`
	Translations         []docTranslation `xml:"translation"`
	Suggests             []docSuggests    `xml:"suggests"`

	Agreements []docAgreement `xml:"agreement"`
	Reviews    []docReview    `xml:"review"`

	DeveloperName []docText `xml:"developer_name"`
	DeveloperID   string    `xml:"developer>id"`
}

// docComponents is the <components> root of the catalog dialect.
type docComponents struct {
	XMLName      xml.Name       `xml:"components"`
	Version      string         `xml:"version,attr,omitempty"`
	Origin       string         `xml:"origin,attr,omitempty"`
	MediaBaseURL string         `xml:"media_baseurl,attr,omitempty"`
	Architecture string         `xml:"architecture,attr,omitempty"`
	Priority     int            `xml:"priority,attr,omitempty"`
	Components   []docComponent `xml:"component"`
}

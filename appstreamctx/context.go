// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package appstreamctx carries the per-parse configuration threaded through
// every codec and pool operation: locale, dialect, format version, origin,
// architecture, media base URL, priority and the source filename.
package appstreamctx

import (
	"fmt"
	"os"
	"strings"
)

// FormatStyle distinguishes the two AppStream XML dialects.
type FormatStyle int

const (
	// Metainfo is the per-component upstream dialect (<component> root).
	Metainfo FormatStyle = iota
	// Catalog is the distro-collection dialect (<components> root, or a
	// DEP-11 YAML stream).
	Catalog
)

func (s FormatStyle) String() string {
	switch s {
	case Metainfo:
		return "metainfo"
	case Catalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// FormatVersion is an ordered enum over the AppStream spec versions this
// module understands, 0.6 through 1.0.
type FormatVersion int

const (
	FormatVersionUnknown FormatVersion = iota
	FormatVersion0_6
	FormatVersion0_7
	FormatVersion0_8
	FormatVersion0_9
	FormatVersion0_10
	FormatVersion0_11
	FormatVersion0_12
	FormatVersion0_13
	FormatVersion0_14
	FormatVersion0_15
	FormatVersion0_16
	FormatVersion1_0
)

// LatestFormatVersion is the default used when a document doesn't declare one.
const LatestFormatVersion = FormatVersion1_0

var formatVersionStrings = map[string]FormatVersion{
	"0.6": FormatVersion0_6, "0.7": FormatVersion0_7, "0.8": FormatVersion0_8,
	"0.9": FormatVersion0_9, "0.10": FormatVersion0_10, "0.11": FormatVersion0_11,
	"0.12": FormatVersion0_12, "0.13": FormatVersion0_13, "0.14": FormatVersion0_14,
	"0.15": FormatVersion0_15, "0.16": FormatVersion0_16, "1.0": FormatVersion1_0,
}

// ParseFormatVersion maps a spec version string to its ordered enum value,
// returning LatestFormatVersion when the string is empty or unrecognized.
func ParseFormatVersion(s string) FormatVersion {
	if v, ok := formatVersionStrings[strings.TrimSpace(s)]; ok {
		return v
	}
	return LatestFormatVersion
}

// Context is immutable after construction: every field is set once via
// functional options and exposed only through getters, mirroring
// kraftkit.sh/packmanager.Query's private-field-plus-getter style.
type Context struct {
	locale        string
	formatStyle   FormatStyle
	formatVersion FormatVersion
	origin        string
	architecture  string
	mediaBaseURL  string
	priority      int
	filename      string
}

// Option configures a Context at construction time.
type Option func(*Context) error

// New builds a Context, defaulting Locale from $LANG (stripped of encoding
// and modifier) or "C" if unset, and FormatVersion to the latest known
// version.
func New(opts ...Option) (*Context, error) {
	ctx := &Context{
		locale:        defaultLocale(),
		formatStyle:   Metainfo,
		formatVersion: LatestFormatVersion,
	}

	for _, opt := range opts {
		if err := opt(ctx); err != nil {
			return nil, fmt.Errorf("could not apply context option: %w", err)
		}
	}

	return ctx, nil
}

func defaultLocale() string {
	lang := os.Getenv("LANG")
	if lang == "" {
		return "C"
	}

	// Strip encoding (".UTF-8") and modifier ("@euro") suffixes, e.g.
	// "de_DE.UTF-8@euro" -> "de_DE".
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}

	if lang == "" || lang == "C" || lang == "POSIX" {
		return "C"
	}

	return lang
}

func (c *Context) Locale() string               { return c.locale }
func (c *Context) FormatStyle() FormatStyle      { return c.formatStyle }
func (c *Context) FormatVersion() FormatVersion  { return c.formatVersion }
func (c *Context) Origin() string                { return c.origin }
func (c *Context) Architecture() string          { return c.architecture }
func (c *Context) MediaBaseURL() string          { return c.mediaBaseURL }
func (c *Context) Priority() int                 { return c.priority }
func (c *Context) Filename() string              { return c.filename }

// WithLocale sets the locale used to resolve localized fields. "ALL" disables
// fallback resolution and keeps every localized variant.
func WithLocale(locale string) Option {
	return func(c *Context) error {
		c.locale = locale
		return nil
	}
}

// WithFormatStyle sets the XML dialect to parse or emit.
func WithFormatStyle(style FormatStyle) Option {
	return func(c *Context) error {
		c.formatStyle = style
		return nil
	}
}

// WithFormatVersion sets the AppStream spec version governing parse/emit
// behavior.
func WithFormatVersion(version FormatVersion) Option {
	return func(c *Context) error {
		c.formatVersion = version
		return nil
	}
}

// WithOrigin sets the origin xml.Emit writes onto a catalog <components>
// root. Parsing does not apply it; parsed components take their origin from
// the document.
func WithOrigin(origin string) Option {
	return func(c *Context) error {
		c.origin = origin
		return nil
	}
}

// WithArchitecture sets the architecture xml.Emit writes onto a catalog
// <components> root. Parsing does not filter on it; parsed components take
// their architecture from the document.
func WithArchitecture(arch string) Option {
	return func(c *Context) error {
		c.architecture = arch
		return nil
	}
}

// WithMediaBaseURL sets the base URL prefixed onto relative media (icon,
// screenshot, video) references found while parsing.
func WithMediaBaseURL(url string) Option {
	return func(c *Context) error {
		c.mediaBaseURL = url
		return nil
	}
}

// WithPriority sets the priority xml.Emit writes onto a catalog <components>
// root. Parsing does not assign it; parsed components take their priority
// from the document.
func WithPriority(priority int) Option {
	return func(c *Context) error {
		c.priority = priority
		return nil
	}
}

// WithFilename records the source filename, used to resolve external
// release lists referenced relative to it.
func WithFilename(filename string) Option {
	return func(c *Context) error {
		c.filename = filename
		return nil
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"appstreamkit.sh/appstreamctx"
	"appstreamkit.sh/component"
)

// Decode parses a DEP-11 YAML stream (optionally gzip-compressed), returning
// the stream's Header, every component found, and a non-fatal LoadReport.
func Decode(data []byte, ctx *appstreamctx.Context) (*Header, []*component.Component, *LoadReport, error) {
	report := &LoadReport{}

	data, err := maybeDecompress(data)
	if err != nil {
		return nil, nil, report, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var header Header
	if err := dec.Decode(&header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, report, &ParseError{Document: 0, Message: "empty DEP-11 stream"}
		}
		return nil, nil, report, &ParseError{Document: 0, Message: err.Error()}
	}
	if header.File != "DEP-11" {
		report.warn("header document's File field is %q, expected \"DEP-11\"", header.File)
	}

	var components []*component.Component
	for i := 1; ; i++ {
		var yc yamlComponent
		err := dec.Decode(&yc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &header, components, report, &ParseError{Document: i, Message: err.Error()}
		}

		c := convertYAMLComponent(&yc, ctx, report)
		if c.Origin == "" {
			c.Origin = header.Origin
		}
		if c.Priority == 0 {
			c.Priority = header.Priority
		}
		if c.Architecture == "" {
			c.Architecture = header.Architecture
		}
		resolveMediaBaseURLDep11(c, firstNonEmptyStr(header.MediaBaseURL, ctx.MediaBaseURL()))

		components = append(components, c)
	}

	return &header, components, report, nil
}

func firstNonEmptyStr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func resolveMediaBaseURLDep11(c *component.Component, baseURL string) {
	if baseURL == "" {
		return
	}

	for _, s := range c.Screenshots {
		s.ResolveMediaBaseURL(baseURL)
	}

	if c.Releases != nil {
		for _, r := range c.Releases.Entries {
			for i := range r.Artifacts {
				r.Artifacts[i].URL = resolveMediaURLDep11(baseURL, r.Artifacts[i].URL)
			}
		}
	}
}

func resolveMediaURLDep11(base, ref string) string {
	if ref == "" || bytes.Contains([]byte(ref), []byte("://")) {
		return ref
	}
	return fmt.Sprintf("%s/%s", trimTrailingSlash(base), trimLeadingSlash(ref))
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func trimLeadingSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}

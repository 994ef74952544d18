// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package releasefetch implements component.ReleaseFetcher: resolving the
// external release list a <releases type="external" url="..."> element
// points at. This is the only package in the module allowed to import
// net/http, keeping the codec and pool packages free of network I/O.
package releasefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultTimeout bounds a single fetch, matching the pool's "never block a
// load indefinitely on one misbehaving source" requirement.
const DefaultTimeout = 30 * time.Second

const userAgent = "appstreamkit.sh/releasefetch"

// Fetcher resolves an external release list's URL into its raw bytes: a
// URL with a scheme is fetched with an HTTP GET, anything else is read as a
// file relative to Dir. Grounded on kraftkit.sh/manifest.NewManifestFromURL's HEAD-then-GET
// pattern, simplified to a single GET since release lists are small and a
// separate HEAD round-trip buys little for them.
type Fetcher struct {
	// Client is the HTTP client used for network fetches. A zero-value
	// Fetcher lazily builds one with DefaultTimeout on first use.
	Client *http.Client

	// Timeout bounds each HTTP request Client performs, when Client is nil
	// and one is constructed on demand. Ignored if Client is set directly.
	Timeout time.Duration

	// Dir is the directory external release-list URLs are resolved against
	// when they name a relative sibling file rather than an absolute URL,
	// typically the directory containing the metainfo document being
	// parsed (appstreamctx.Context.Filename's directory).
	Dir string
}

// New builds a Fetcher rooted at dir, the directory of the document whose
// <releases> element is being resolved.
func New(dir string) *Fetcher {
	return &Fetcher{Dir: dir}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Fetch implements component.ReleaseFetcher. A url with no scheme (no
// "://") is treated as a path relative to Dir and read from disk; otherwise
// it is fetched over HTTP(S). Non-2xx responses are reported as errors so
// ReleaseList.Resolve records them rather than silently returning no
// releases.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !looksLikeURL(url) {
		return f.fetchSibling(url)
	}
	return f.fetchHTTP(ctx, url)
}

func (f *Fetcher) fetchSibling(name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.Dir, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("releasefetch: reading sibling release list %s: %w", path, err)
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("releasefetch: building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("releasefetch: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("releasefetch: %s returned status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("releasefetch: reading body of %s: %w", url, err)
	}
	return data, nil
}

func looksLikeURL(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return true
		}
	}
	return false
}

// SiblingReleasesPath returns the conventional releases/<id>.releases.xml
// path relative to dir for a component named id, the fallback location
// spec.md §5 names for a release list with no external url but no embedded
// entries either.
func SiblingReleasesPath(dir, id string) string {
	return filepath.Join(dir, "releases", id+".releases.xml")
}

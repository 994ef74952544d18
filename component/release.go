// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ReleaseKind distinguishes a stable release from a pre-release/snapshot.
type ReleaseKind string

const (
	ReleaseStable   ReleaseKind = "stable"
	ReleaseDevel    ReleaseKind = "development"
	ReleaseSnapshot ReleaseKind = "snapshot"
)

// Urgency is the upgrade urgency AppStream attaches to a release.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// IssueKind distinguishes the kind of tracker an Issue entry references.
type IssueKind string

const (
	IssueGeneric  IssueKind = "generic"
	IssueCVE      IssueKind = "cve"
)

// Issue is one resolved issue/CVE mentioned in a release's description.
type Issue struct {
	Kind IssueKind
	ID   string
	URL  string
}

// ArtifactKind distinguishes a source tarball from a platform-specific
// binary artifact.
type ArtifactKind string

const (
	ArtifactSource ArtifactKind = "source"
	ArtifactBinary ArtifactKind = "binary"
)

// ChecksumKind enumerates the digest algorithms a release Checksum may use.
type ChecksumKind string

const (
	ChecksumSHA1   ChecksumKind = "sha1"
	ChecksumSHA256 ChecksumKind = "sha256"
	ChecksumBlake2b ChecksumKind = "blake2b"
)

// Checksum is a single digest attached to an Artifact.
type Checksum struct {
	Kind  ChecksumKind
	Value string
}

// SizeKind distinguishes a download size from an installed size.
type SizeKind string

const (
	SizeDownload  SizeKind = "download"
	SizeInstalled SizeKind = "installed"
)

// Size is a single size measurement attached to an Artifact.
type Size struct {
	Kind  SizeKind
	Bytes uint64
}

// Human renders Bytes using github.com/dustin/go-humanize, e.g. "4.2 MB".
func (s Size) Human() string {
	return humanize.Bytes(s.Bytes)
}

// Artifact is a single downloadable file belonging to a Release.
type Artifact struct {
	Kind         ArtifactKind
	Platform     string
	URL          string
	Checksums    []Checksum
	Sizes        []Size
	Filename     string
}

// Release describes one version of a component.
type Release struct {
	Version   string
	Kind      ReleaseKind
	Urgency   Urgency
	Timestamp int64 // unix seconds; 0 if unknown
	Date      string
	DateEOL   string

	Description LocalizedMarkup
	Issues      []Issue
	Artifacts   []Artifact

	URL string // <url type="details">
}

// ReleaseFetcher is the external collaborator that resolves an `external`
// release list's URL into a byte stream. Concrete HTTP/file implementations
// live in package releasefetch; component itself never imports net/http.
type ReleaseFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ReleaseList holds the releases a component directly embeds, or defers
// resolution of an `external` indirection to a ReleaseFetcher.
type ReleaseList struct {
	// Entries are the releases known without performing any fetch: either
	// directly embedded in the source document, or already resolved.
	Entries []*Release

	// ExternalURL is set when the release list uses
	// <releases type="external" url="...">; Entries is empty until Resolve
	// is called.
	ExternalURL string

	resolved bool
	errored  error
}

// Resolve fetches and parses the external release list referenced by
// ExternalURL, if any, using fetcher and parse (the caller's release-list
// XML/YAML decoder, injected to avoid a codec dependency cycle). A failed
// fetch is recorded on the list (Errored) rather than returned, matching
// spec.md §5's "never fails the overall load" rule.
func (rl *ReleaseList) Resolve(ctx context.Context, fetcher ReleaseFetcher, parse func([]byte) ([]*Release, error)) {
	if rl.resolved || rl.ExternalURL == "" {
		return
	}

	data, err := fetcher.Fetch(ctx, rl.ExternalURL)
	if err != nil {
		rl.errored = fmt.Errorf("fetching external release list %s: %w", rl.ExternalURL, err)
		rl.resolved = true
		return
	}

	entries, err := parse(data)
	if err != nil {
		rl.errored = fmt.Errorf("parsing external release list %s: %w", rl.ExternalURL, err)
		rl.resolved = true
		return
	}

	rl.Entries = entries
	rl.resolved = true
}

// Resolved reports whether Resolve has been attempted (successfully or not).
func (rl *ReleaseList) Resolved() bool { return rl.resolved }

// Errored returns the error recorded by a failed Resolve, or nil.
func (rl *ReleaseList) Errored() error { return rl.errored }

// Latest returns the first entry, or nil if there are none. Entries keep the
// order they were parsed or resolved in (AppStream documents list the newest
// release first); the list is not re-sorted, and an append merge adds new
// entries at the end.
func (rl *ReleaseList) Latest() *Release {
	if rl == nil || len(rl.Entries) == 0 {
		return nil
	}
	return rl.Entries[0]
}

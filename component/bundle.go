// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import "sort"

// BundleKind enumerates the packaging technologies a <bundle> element can
// reference.
type BundleKind string

const (
	BundleFlatpak BundleKind = "flatpak"
	BundleSnap    BundleKind = "snap"
	BundleAppImage BundleKind = "appimage"
	BundleTarball BundleKind = "tarball"
	BundleCabinet BundleKind = "cabinet"
	BundleLinglong BundleKind = "linglong"
)

// Bundles maps each bundle kind a component ships as to its bundle id.
type Bundles map[BundleKind]string

// SortedKinds returns the map's kinds in deterministic emit order.
func (b Bundles) SortedKinds() []BundleKind {
	kinds := make([]BundleKind, 0, len(b))
	for k := range b {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

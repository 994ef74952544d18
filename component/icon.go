// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

// IconKind enumerates the <icon type="..."> values spec.md §4.3 recognizes.
type IconKind string

const (
	IconStock   IconKind = "stock"
	IconCached  IconKind = "cached"
	IconLocal   IconKind = "local"
	IconRemote  IconKind = "remote"
)

// Icon is one icon entry; Width/Height are 0 for stock icons, which carry no
// explicit size.
type Icon struct {
	Kind   IconKind
	Value  string // stock name, relative/absolute path, or URL
	Width  int
	Height int
	Scale  int
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

// Flags holds the load-time toggles a Pool is configured with. Refine
// consults ResolveAddons. The source-selection toggles (LoadOSCatalog,
// LoadOSMetainfo, LoadDesktopEntries, LoadBundleCatalogs, IgnoreCacheAge,
// PreferMetainfo, MonitorSourceDirs) are stored and exposed through
// Pool.Flags() only; the Pool itself loads exactly the Sources passed to
// LoadSource/LoadSourceAsync. The data model and codecs are unaffected by
// any of these.
type Flags struct {
	loadOSCatalog        bool
	loadOSMetainfo       bool
	loadDesktopEntries   bool
	loadBundleCatalogs   bool
	ignoreCacheAge       bool
	resolveAddons        bool
	preferMetainfo       bool
	monitorSourceDirs    bool
}

// FlagOption is a method-option which sets one Flags field, mirroring
// kraftkit.sh/packmanager.QueryOption.
type FlagOption func(*Flags)

// NewFlags returns the finalized Flags given the provided options. Addon
// resolution defaults on since Refine's extends-back-propagation is part of
// the pool's core contract, not an opt-in.
func NewFlags(opts ...FlagOption) *Flags {
	f := &Flags{
		resolveAddons: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithLoadOSCatalog(v bool) FlagOption {
	return func(f *Flags) { f.loadOSCatalog = v }
}

func WithLoadOSMetainfo(v bool) FlagOption {
	return func(f *Flags) { f.loadOSMetainfo = v }
}

func WithLoadDesktopEntries(v bool) FlagOption {
	return func(f *Flags) { f.loadDesktopEntries = v }
}

func WithLoadBundleCatalogs(v bool) FlagOption {
	return func(f *Flags) { f.loadBundleCatalogs = v }
}

func WithIgnoreCacheAge(v bool) FlagOption {
	return func(f *Flags) { f.ignoreCacheAge = v }
}

func WithResolveAddons(v bool) FlagOption {
	return func(f *Flags) { f.resolveAddons = v }
}

func WithPreferMetainfo(v bool) FlagOption {
	return func(f *Flags) { f.preferMetainfo = v }
}

func WithMonitorSourceDirs(v bool) FlagOption {
	return func(f *Flags) { f.monitorSourceDirs = v }
}

func (f *Flags) LoadOSCatalog() bool      { return f.loadOSCatalog }
func (f *Flags) LoadOSMetainfo() bool     { return f.loadOSMetainfo }
func (f *Flags) LoadDesktopEntries() bool { return f.loadDesktopEntries }
func (f *Flags) LoadBundleCatalogs() bool { return f.loadBundleCatalogs }
func (f *Flags) IgnoreCacheAge() bool     { return f.ignoreCacheAge }
func (f *Flags) ResolveAddons() bool      { return f.resolveAddons }
func (f *Flags) PreferMetainfo() bool     { return f.preferMetainfo }
func (f *Flags) MonitorSourceDirs() bool  { return f.monitorSourceDirs }

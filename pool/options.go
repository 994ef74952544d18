// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pool

// Option configures a Pool at construction time, mirroring
// appstreamctx.Option's functional-option style.
type Option func(*Pool)

// WithFlags sets the Pool's load-time Flags, replacing the default.
func WithFlags(f *Flags) Option {
	return func(p *Pool) {
		if f != nil {
			p.flags = f
		}
	}
}

// WithHostArchitecture sets the architecture Insert's equal-priority
// tiebreak compares component.Architecture against (spec.md §4.6 "cpt arch
// matches host"). Left empty, every component is treated as host-compatible
// and the tiebreak falls through to a hard collision.
func WithHostArchitecture(arch string) Option {
	return func(p *Pool) {
		p.host = arch
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"context"
)

// contextKey is used to retrieve the config manager from the context.
type contextKey struct{}

// WithConfigManager returns a new context carrying the provided manager.
func WithConfigManager(ctx context.Context, cfgm *ConfigManager) context.Context {
	return context.WithValue(ctx, contextKey{}, cfgm)
}

// M returns the ConfigManager stored in the context, or an inert manager
// seeded with defaults if none was stored.
func M(ctx context.Context) *ConfigManager {
	v := ctx.Value(contextKey{})
	if v == nil {
		cm, _ := NewConfigManager()
		return cm
	}

	return v.(*ConfigManager)
}

// G returns the Config stored in the context, or a default Config.
func G(ctx context.Context) *Config {
	return M(ctx).Config
}

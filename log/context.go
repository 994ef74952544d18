// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package log carries the per-call *logrus.Logger through a context.Context
// so catalog loaders (pool.LoadSource, pool.LoadSourceAsync) can emit
// parse/collision diagnostics without threading a logger argument through
// every Source implementation.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

var (
	// G is an alias for FromContext.
	//
	// We may want to define this locally to a package to get package tagged log
	// messages.
	G = FromContext

	// L is the global logger, used whenever a context has none attached (e.g.
	// a LoadSource call made with context.Background()).
	L = logrus.StandardLogger()
)

// contextKey is used to retrieve the logger from the context.
type contextKey struct{}

// WithLogger returns a new context with the provided logger. Use in
// combination with logger.WithField(s) for great effect.
func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stashed in ctx by WithLogger, or the
// package-global logger L if ctx carries none.
func FromContext(ctx context.Context) *logrus.Logger {
	l, ok := ctx.Value(contextKey{}).(*logrus.Logger)
	if !ok || l == nil {
		return L
	}

	return l
}

// ForSource returns the context's logger with a "source" field set to name,
// the one piece of structure every load-diagnostic line in this module
// carries (pool.LoadSource logs a skipped CollisionError this way per
// Source it loads).
func ForSource(ctx context.Context, name string) *logrus.Entry {
	return FromContext(ctx).WithField("source", name)
}

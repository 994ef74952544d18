// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger for level (one of the Levels() names, case
// insensitive; an unrecognized name falls back to info) and t, the output
// style a caller configured via config.Config.LogType. It is the
// constructor a catalog-loading CLI wires up once at startup and then
// threads through every pool.LoadSource/LoadSourceAsync call via
// WithLogger.
func New(level string, t LoggerType) *logrus.Logger {
	logger := logrus.New()

	lvl, ok := Levels()[strings.ToLower(level)]
	if !ok {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	switch t {
	case QUIET:
		logger.SetOutput(io.Discard)
	case JSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	case FANCY:
		logger.SetFormatter(&TextFormatter{ForceFormatting: true, FullTimestamp: true})
	default: // BASIC
		logger.SetFormatter(&TextFormatter{})
	}

	return logger
}

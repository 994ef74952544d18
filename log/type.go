// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import "strings"

// LoggerType selects how New renders catalog load diagnostics: silently
// (QUIET), as plain key=value lines (BASIC), as colored terminal lines
// (FANCY), or as one JSON object per line (JSON) for machine consumption.
// It mirrors config.Config.LogType.
type LoggerType uint

// Logger types
const (
	QUIET LoggerType = iota
	BASIC
	FANCY
	JSON
)

// LoggerTypeFromString maps a config.Config.LogType value to its LoggerType,
// defaulting to BASIC for an empty or unrecognized name.
func LoggerTypeFromString(name string) LoggerType {
	name = strings.ToLower(name)
	switch name {
	case "quiet":
		return QUIET
	case "basic":
		return BASIC
	case "fancy":
		return FANCY
	case "json":
		return JSON
	default:
		return BASIC
	}
}

func LoggerTypeToString(t LoggerType) string {
	switch t {
	case QUIET:
		return "quiet"
	case BASIC:
		return "basic"
	case FANCY:
		return "fancy"
	case JSON:
		return "json"
	default:
		return "basic"
	}
}

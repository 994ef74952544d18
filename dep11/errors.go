// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import "fmt"

// ParseError reports malformed YAML: a syntax error the underlying yaml.v3
// decoder could not recover from. Mirrors xml.ParseError's shape.
type ParseError struct {
	Document int // 0-based document index in the stream, header is 0
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dep11 parse error in document %d: %s", e.Document, e.Message)
}

// SchemaError reports a structurally valid YAML document that violates a
// DEP-11 schema rule, e.g. a component document missing a required key.
type SchemaError struct {
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dep11 schema error at %q: %s", e.Key, e.Reason)
}

// UnknownKey records a top-level key this codec doesn't recognize; it never
// fails the load, it is only appended to the LoadReport for diagnostics.
type UnknownKey struct {
	Key string
}

func (e UnknownKey) String() string {
	return "unknown key: " + e.Key
}

// LoadReport accumulates the non-fatal findings from a Decode call.
type LoadReport struct {
	UnknownKeys []UnknownKey
	Warnings    []string
}

func (r *LoadReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

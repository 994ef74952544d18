// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import "appstreamkit.sh/compareversion"

// RelationKind distinguishes a hard requirement from a soft recommendation
// or a mere support claim.
type RelationKind string

const (
	RelationRequires    RelationKind = "requires"
	RelationRecommends  RelationKind = "recommends"
	RelationSupports    RelationKind = "supports"
)

// ItemKind enumerates what a Relation constrains: another component id,
// a piece of hardware/firmware, a kernel feature, memory, a display or
// control method, or internet access.
type ItemKind string

const (
	ItemID          ItemKind = "id"
	ItemModalias    ItemKind = "modalias"
	ItemKernel      ItemKind = "kernel"
	ItemMemory      ItemKind = "memory"
	ItemFirmware    ItemKind = "firmware"
	ItemControl     ItemKind = "control"
	ItemDisplayLen  ItemKind = "display_length"
	ItemInternet    ItemKind = "internet"
)

// Compare is the comparison operator a version-bearing Relation uses.
type Compare string

const (
	CompareEq  Compare = "eq"
	CompareNe  Compare = "ne"
	CompareLt  Compare = "lt"
	CompareLe  Compare = "le"
	CompareGt  Compare = "gt"
	CompareGe  Compare = "ge"
	CompareNone Compare = ""
)

// ControlKind enumerates the input methods a <control> relation item names.
type ControlKind string

const (
	ControlPointing ControlKind = "pointing"
	ControlKeyboard ControlKind = "keyboard"
	ControlConsole  ControlKind = "console"
	ControlTouch    ControlKind = "touch"
	ControlGamepad  ControlKind = "gamepad"
	ControlVoice    ControlKind = "voice"
	ControlVision   ControlKind = "vision"
)

// DisplaySideKind distinguishes a minimum-satisfies from maximum-satisfies
// display_length comparison.
type DisplaySideKind string

const (
	DisplaySideShortest DisplaySideKind = "shortest"
	DisplaySideLongest  DisplaySideKind = "longest"
)

// Relation is a single <requires>/<recommends>/<supports> entry.
type Relation struct {
	Kind       RelationKind
	Item       ItemKind
	Value      string // id name, modalias pattern, control name, etc.
	Version    string
	Compare    Compare
	DisplaySide DisplaySideKind
}

// SystemInfo is the external collaborator a relation is checked against; it
// abstracts away probing real hardware, matching spec.md §1/§6's rule that
// this module is interfaced only through injected collaborators, never a
// direct syscall/procfs read.
type SystemInfo interface {
	HasModalias(pattern string) bool
	KernelVersion() string
	MemoryBytes() uint64
	HasControl(ControlKind) bool
	HasInternet() bool
	ComponentVersion(id string) (string, bool)
}

// CheckResult is the outcome of evaluating a Relation against a SystemInfo.
type CheckResult int

const (
	CheckUnknown CheckResult = iota
	CheckSatisfied
	CheckNotSatisfied
	CheckError
)

// Satisfied evaluates r against sys, returning CheckUnknown for item kinds
// this module doesn't know how to probe (e.g. firmware enumeration, which
// has no portable Go equivalent).
func (r *Relation) Satisfied(sys SystemInfo) CheckResult {
	switch r.Item {
	case ItemModalias:
		if sys.HasModalias(r.Value) {
			return CheckSatisfied
		}
		return CheckNotSatisfied

	case ItemControl:
		if sys.HasControl(ControlKind(r.Value)) {
			return CheckSatisfied
		}
		return CheckNotSatisfied

	case ItemInternet:
		if sys.HasInternet() {
			return CheckSatisfied
		}
		return CheckNotSatisfied

	case ItemKernel:
		return compareVersionRelation(sys.KernelVersion(), r.Version, r.Compare)

	case ItemID:
		version, ok := sys.ComponentVersion(r.Value)
		if !ok {
			return CheckNotSatisfied
		}
		if r.Compare == CompareNone {
			return CheckSatisfied
		}
		return compareVersionRelation(version, r.Version, r.Compare)

	default:
		return CheckUnknown
	}
}

func compareVersionRelation(have, want string, op Compare) CheckResult {
	if op == CompareNone {
		return CheckSatisfied
	}

	cmp := compareversion.Compare(have, want)

	var satisfied bool
	switch op {
	case CompareEq:
		satisfied = cmp == 0
	case CompareNe:
		satisfied = cmp != 0
	case CompareLt:
		satisfied = cmp < 0
	case CompareLe:
		satisfied = cmp <= 0
	case CompareGt:
		satisfied = cmp > 0
	case CompareGe:
		satisfied = cmp >= 0
	default:
		return CheckError
	}

	if satisfied {
		return CheckSatisfied
	}
	return CheckNotSatisfied
}

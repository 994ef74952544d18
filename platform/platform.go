// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package platform validates the GNU-style platform triplets AppStream
// attaches to per-architecture component variants (spec.md §3
// Component.architecture), e.g. "x86_64-linux-gnu". Grounded on
// kraftkit.sh/unikraft.ComponentType's enum-with-lookup-map idiom
// (a set of known constants plus a map consulted by the validator, rather
// than a generated parser).
package platform

import "strings"

// Arch enumerates the machine architectures a triplet names.
type Arch string

const (
	ArchX86_64  Arch = "x86_64"
	ArchI686    Arch = "i686"
	ArchAarch64 Arch = "aarch64"
	ArchArm     Arch = "arm"
	ArchArmv7   Arch = "armv7"
	ArchRiscv64 Arch = "riscv64"
	ArchPPC64LE Arch = "ppc64le"
	ArchS390x   Arch = "s390x"
	ArchNoarch  Arch = "noarch"
)

var knownArch = map[Arch]bool{
	ArchX86_64: true, ArchI686: true, ArchAarch64: true, ArchArm: true,
	ArchArmv7: true, ArchRiscv64: true, ArchPPC64LE: true, ArchS390x: true,
	ArchNoarch: true,
}

// Vendor enumerates the triplet's (often omitted) vendor field.
type Vendor string

const (
	VendorUnknown Vendor = "unknown"
	VendorPC      Vendor = "pc"
	VendorRedhat  Vendor = "redhat"
	VendorSuse    Vendor = "suse"
)

var knownVendor = map[Vendor]bool{
	VendorUnknown: true, VendorPC: true, VendorRedhat: true, VendorSuse: true,
}

// OS enumerates the triplet's operating-system field.
type OS string

const (
	OSLinux   OS = "linux"
	OSDarwin  OS = "darwin"
	OSFreeBSD OS = "freebsd"
	OSWindows OS = "windows"
)

var knownOS = map[OS]bool{
	OSLinux: true, OSDarwin: true, OSFreeBSD: true, OSWindows: true,
}

// ABI enumerates the triplet's C library/ABI field.
type ABI string

const (
	ABIGnu   ABI = "gnu"
	ABIMusl  ABI = "musl"
	ABIMsvc  ABI = "msvc"
	ABIEabi  ABI = "eabi"
	ABIEabihf ABI = "eabihf"
)

var knownABI = map[ABI]bool{
	ABIGnu: true, ABIMusl: true, ABIMsvc: true, ABIEabi: true, ABIEabihf: true,
}

// Triplet is a parsed, validated platform triplet.
type Triplet struct {
	Arch   Arch
	Vendor Vendor // "" if the 2-component arch-os form was used
	OS     OS
	ABI    ABI // "" if the triplet carries no ABI field
}

// Parse splits s on '-' and validates each field against the known sets,
// accepting the 2- (arch-os), 3- (arch-vendor-os or arch-os-abi) and
// 4-component (arch-vendor-os-abi) GNU triplet forms.
func Parse(s string) (Triplet, bool) {
	parts := strings.Split(s, "-")

	arch := Arch(parts[0])
	if !knownArch[arch] {
		return Triplet{}, false
	}

	switch len(parts) {
	case 2:
		if os := OS(parts[1]); knownOS[os] {
			return Triplet{Arch: arch, OS: os}, true
		}
		return Triplet{}, false

	case 3:
		// arch-vendor-os
		if vendor, os := Vendor(parts[1]), OS(parts[2]); knownVendor[vendor] && knownOS[os] {
			return Triplet{Arch: arch, Vendor: vendor, OS: os}, true
		}
		// arch-os-abi
		if os, abi := OS(parts[1]), ABI(parts[2]); knownOS[os] && knownABI[abi] {
			return Triplet{Arch: arch, OS: os, ABI: abi}, true
		}
		return Triplet{}, false

	case 4:
		vendor, os, abi := Vendor(parts[1]), OS(parts[2]), ABI(parts[3])
		if knownVendor[vendor] && knownOS[os] && knownABI[abi] {
			return Triplet{Arch: arch, Vendor: vendor, OS: os, ABI: abi}, true
		}
		return Triplet{}, false

	default:
		return Triplet{}, false
	}
}

// ValidTriplet reports whether s parses as a recognized platform triplet.
func ValidTriplet(s string) bool {
	_, ok := Parse(s)
	return ok
}

// String renders the triplet back to its hyphen-separated form.
func (t Triplet) String() string {
	parts := []string{string(t.Arch)}
	if t.Vendor != "" {
		parts = append(parts, string(t.Vendor))
	}
	parts = append(parts, string(t.OS))
	if t.ABI != "" {
		parts = append(parts, string(t.ABI))
	}
	return strings.Join(parts, "-")
}

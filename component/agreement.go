// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// This file supplements spec.md's explicit entity list: Agreement and Review
// (agreement.go/review.go) are named by upstream's as-component-private.h and
// by spec.md's own §3 lifecycle paragraph without a dedicated subsection of
// their own, so their shape here is modeled directly on the former and on
// AppStream 1.0's EULA/privacy-policy metadata.
package component

// AgreementKind distinguishes the purpose of an agreement document.
type AgreementKind string

const (
	AgreementGeneric AgreementKind = "generic"
	AgreementEULA    AgreementKind = "eula"
	AgreementPrivacy AgreementKind = "privacy"
)

// AgreementSection is one <agreement_section> within an Agreement: a
// localized title and description pair.
type AgreementSection struct {
	Title       LocalizedString
	Description LocalizedMarkup
}

// Agreement is a single EULA/privacy-policy/terms-of-service document a
// component requires the user to accept.
type Agreement struct {
	Kind     AgreementKind
	ID       string
	Version  string
	Sections []AgreementSection
}

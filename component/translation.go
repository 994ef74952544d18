// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

// TranslationKind names the translation framework a <translation> element
// refers to.
type TranslationKind string

const (
	TranslationGettext TranslationKind = "gettext"
	TranslationQt      TranslationKind = "qt"
)

// Translation records the i18n domain name used to pull a component's
// translation completion statistics.
type Translation struct {
	Kind   TranslationKind
	Domain string
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package dep11

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

var gzipMagic = []byte{0x1f, 0x8b}

// maybeDecompress transparently gunzips data when it carries the gzip magic
// header, matching the .yml.gz file-extension convention; data without the
// magic is returned unchanged. Grounded on the decompressGzip helper in
// other_examples/...alt-atomic-apm__internal-common-appstream-swcat.go.go.
func maybeDecompress(data []byte) ([]byte, error) {
	if len(data) < 2 || !bytes.Equal(data[:2], gzipMagic) {
		return data, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("dep11: gzip header present but invalid: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dep11: decompressing gzip stream: %w", err)
	}

	return out, nil
}

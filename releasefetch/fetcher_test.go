// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package releasefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchHTTPSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<releases/>"))
	}))
	defer server.Close()

	f := New("")
	data, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<releases/>", string(data))
}

func TestFetchHTTPNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New("")
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
}

func TestFetchSiblingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "releases"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "releases", "org.example.Foo.releases.xml"), []byte("<releases/>"), 0o644))

	f := New(dir)
	data, err := f.Fetch(context.Background(), "releases/org.example.Foo.releases.xml")
	require.NoError(t, err)
	assert.Equal(t, "<releases/>", string(data))
}

func TestFetchSiblingFileMissing(t *testing.T) {
	f := New(t.TempDir())
	_, err := f.Fetch(context.Background(), "releases/missing.releases.xml")
	require.Error(t, err)
}

func TestSiblingReleasesPath(t *testing.T) {
	got := SiblingReleasesPath("/var/lib/appstream", "org.example.Foo")
	assert.Equal(t, "/var/lib/appstream/releases/org.example.Foo.releases.xml", got)
}

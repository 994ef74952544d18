// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package component

import "strings"

// ScreenshotKind marks a screenshot as the component's default/featured one.
type ScreenshotKind string

const (
	ScreenshotDefault ScreenshotKind = "default"
	ScreenshotExtra   ScreenshotKind = "extra"
)

// ImageKind distinguishes a thumbnail-sized image from the source image.
type ImageKind string

const (
	ImageSource    ImageKind = "source"
	ImageThumbnail ImageKind = "thumbnail"
)

// Image is a single raster image attached to a Screenshot.
type Image struct {
	Kind   ImageKind
	URL    string
	Width  int
	Height int
	Locale string
}

// VideoCodec enumerates the codecs spec.md recognizes for Screenshot videos.
type VideoCodec string

const (
	VideoCodecAV1  VideoCodec = "av1"
	VideoCodecVP9  VideoCodec = "vp9"
)

// VideoContainer enumerates the container formats for Screenshot videos.
type VideoContainer string

const (
	VideoContainerWebM VideoContainer = "webm"
	VideoContainerMKV  VideoContainer = "mkv"
)

// Video is a single screencast attached to a Screenshot.
type Video struct {
	Codec     VideoCodec
	Container VideoContainer
	URL       string
	Width     int
	Height    int
}

// Screenshot is one screenshot entry, with one or more resolution variants
// and/or an accompanying video.
type Screenshot struct {
	Kind    ScreenshotKind
	Caption LocalizedString
	Images  []Image
	Videos  []Video
}

// ResolveMediaBaseURL prefixes baseURL onto every relative image/video URL
// in s, implementing spec.md §4.3's base-URL-prefixing rule. Absolute URLs
// (scheme present) are left untouched.
func (s *Screenshot) ResolveMediaBaseURL(baseURL string) {
	if baseURL == "" {
		return
	}

	for i := range s.Images {
		s.Images[i].URL = resolveURL(baseURL, s.Images[i].URL)
	}

	for i := range s.Videos {
		s.Videos[i].URL = resolveURL(baseURL, s.Videos[i].URL)
	}
}

func resolveURL(base, ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}

	base = strings.TrimSuffix(base, "/")
	ref = strings.TrimPrefix(ref, "/")
	return base + "/" + ref
}

func isAbsoluteURL(s string) bool {
	i := strings.Index(s, "://")
	return i > 0 && !strings.ContainsAny(s[:i], "/ ")
}

// SPDX-License-Identifier: BSD-3-Clause
//
// Authors: Alexander Jung <alex@unikraft.io>
//
// Copyright (c) 2022, Unikraft GmbH.  All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package config provides the ambient configuration for tools built on top of
// this module: default locale, catalog search paths, search tuning and the
// network opt-in that gates the releasefetch collaborator.
package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
)

// Config holds every tunable read by the pool, search and releasefetch
// packages. Values are seeded with NewDefaultConfig and may be overridden by
// an EnvFeeder and/or a YamlFeeder, in the order they are added to a
// ConfigManager.
type Config struct {
	Locale     string `json:"locale"      yaml:"locale,omitempty"      toml:"locale,omitempty"      env:"APPSTREAMKIT_LOCALE"      default:"C"`
	LogLevel   string `json:"log_level"   yaml:"log_level"             toml:"log_level"             env:"APPSTREAMKIT_LOG_LEVEL"   default:"info"`
	LogType    string `json:"log_type"    yaml:"log_type"              toml:"log_type"              env:"APPSTREAMKIT_LOG_TYPE"    default:"fancy"`
	Timestamps bool   `json:"timestamps"  yaml:"timestamps"            toml:"timestamps"            env:"APPSTREAMKIT_TIMESTAMPS"  default:"false"`

	Paths struct {
		Config   string   `json:"config"   yaml:"config,omitempty"   toml:"config,omitempty"   env:"APPSTREAMKIT_PATHS_CONFIG"`
		Catalogs []string `json:"catalogs" yaml:"catalogs,omitempty" toml:"catalogs,omitempty" env:"APPSTREAMKIT_PATHS_CATALOGS"`
		Cache    string   `json:"cache"    yaml:"cache,omitempty"    toml:"cache,omitempty"    env:"APPSTREAMKIT_PATHS_CACHE"`
	} `json:"paths" yaml:"paths,omitempty" toml:"paths,omitempty"`

	Search struct {
		StemmerAlgorithm string   `json:"stemmer_algorithm" yaml:"stemmer_algorithm" toml:"stemmer_algorithm" env:"APPSTREAMKIT_SEARCH_STEMMER"    default:"porter2"`
		MinTokenLength   int      `json:"min_token_length"  yaml:"min_token_length"  toml:"min_token_length"  env:"APPSTREAMKIT_SEARCH_MIN_TOKEN"  default:"3"`
		Greylist         []string `json:"greylist"          yaml:"greylist,omitempty" toml:"greylist,omitempty"`
		FuzzyThreshold   float64  `json:"fuzzy_threshold"   yaml:"fuzzy_threshold"   toml:"fuzzy_threshold"   env:"APPSTREAMKIT_SEARCH_FUZZY_MIN" default:"0.85"`
	} `json:"search" yaml:"search" toml:"search"`

	Network struct {
		AllowFetch bool   `json:"allow_fetch" yaml:"allow_fetch" toml:"allow_fetch" env:"APPSTREAMKIT_NETWORK_ALLOW_FETCH" default:"false"`
		Timeout    string `json:"timeout"     yaml:"timeout"     toml:"timeout"     env:"APPSTREAMKIT_NETWORK_TIMEOUT"     default:"30s"`
	} `json:"network" yaml:"network" toml:"network"`

	Auth map[string]AuthConfig `json:"auth" yaml:"auth,omitempty" toml:"auth,omitempty"`
}

// AuthConfig describes credentials required to fetch an external release list
// or catalog source guarded behind authentication.
type AuthConfig struct {
	User      string `json:"user"       yaml:"user"       toml:"user"       env:"APPSTREAMKIT_AUTH_%s_USER"`
	Token     string `json:"token"      yaml:"token"      toml:"token"      env:"APPSTREAMKIT_AUTH_%s_TOKEN"`
	Endpoint  string `json:"endpoint"   yaml:"endpoint"   toml:"endpoint"   env:"APPSTREAMKIT_AUTH_%s_ENDPOINT"`
	VerifySSL bool   `json:"verify_ssl" yaml:"verify_ssl" toml:"verify_ssl" env:"APPSTREAMKIT_AUTH_%s_VERIFY_SSL" default:"true"`
}

// ConfigDetail documents a single configuration key for introspection tools.
type ConfigDetail struct {
	Key           string
	Description   string
	AllowedValues []string
}

var configDetails = []ConfigDetail{
	{Key: "locale", Description: "default locale used when a Context does not specify one"},
	{
		Key:         "log_level",
		Description: "logging verbosity",
		AllowedValues: []string{
			"fatal", "error", "warn", "info", "debug", "trace",
		},
	},
	{
		Key:         "log_type",
		Description: "logging output format",
		AllowedValues: []string{
			"quiet", "basic", "fancy", "json",
		},
	},
	{Key: "timestamps", Description: "show timestamps with log output"},
	{Key: "search.stemmer_algorithm", Description: "stemming algorithm used to normalize search tokens", AllowedValues: []string{"porter2", "none"}},
	{Key: "search.min_token_length", Description: "tokens shorter than this are dropped before stemming"},
	{Key: "search.fuzzy_threshold", Description: "minimum Jaro-Winkler similarity for a fuzzy query match"},
	{Key: "network.allow_fetch", Description: "allow releasefetch to perform HTTP requests for external release lists"},
	{Key: "network.timeout", Description: "timeout applied to a single external release list fetch"},
}

// ConfigDetails returns descriptions of each configuration parameter as well
// as valid values.
func ConfigDetails() []ConfigDetail {
	return configDetails
}

// NewDefaultConfig returns a Config populated purely from `default` struct
// tags and derived path defaults, with no feeders applied.
func NewDefaultConfig() (*Config, error) {
	c := &Config{}

	if err := setDefaults(c); err != nil {
		return nil, fmt.Errorf("could not set defaults for config: %s", err)
	}

	if len(c.Paths.Config) == 0 {
		c.Paths.Config = ConfigDir()
	}

	if len(c.Paths.Cache) == 0 {
		c.Paths.Cache = filepath.Join(DataDir(), "cache")
	}

	if len(c.Paths.Catalogs) == 0 {
		c.Paths.Catalogs = []string{
			"/usr/share/swcatalog/xml",
			"/usr/share/swcatalog/yaml",
			"/usr/share/metainfo",
		}
	}

	return c, nil
}

func setDefaults(s interface{}) error {
	return setDefaultValue(reflect.ValueOf(s), "")
}

func setDefaultValue(v reflect.Value, def string) error {
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("not a pointer value")
	}

	v = reflect.Indirect(v)

	switch v.Kind() {
	case reflect.Int:
		if len(def) > 0 {
			i, err := strconv.ParseInt(def, 10, 64)
			if err != nil {
				return fmt.Errorf("could not parse default integer value: %s", err)
			}
			v.SetInt(i)
		}

	case reflect.Float64:
		if len(def) > 0 {
			f, err := strconv.ParseFloat(def, 64)
			if err != nil {
				return fmt.Errorf("could not parse default float value: %s", err)
			}
			v.SetFloat(f)
		}

	case reflect.String:
		if len(def) > 0 {
			v.SetString(def)
		}

	case reflect.Bool:
		if len(def) > 0 {
			b, err := strconv.ParseBool(def)
			if err != nil {
				return fmt.Errorf("could not parse default boolean value: %s", err)
			}
			v.SetBool(b)
		} else {
			v.SetBool(false)
		}

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := setDefaultValue(
				v.Field(i).Addr(),
				v.Type().Field(i).Tag.Get("default"),
			); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Map:
		// No default for collection-typed fields; left for callers to populate.

	default:
		// Ignore this value and property entirely
		return nil
	}

	return nil
}

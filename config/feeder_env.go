// SPDX-License-Identifier: BSD-3-Clause
//
// Authors: Stefan Jumarea <stefanjumarea02@gmail.com>
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

package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
)

// EnvFeeder feeds using environment variables, matching each field's `env`
// struct tag. Auth entries use a "%s" placeholder in their tag which is
// filled in with the lowercased domain taken from the environment variable
// name, e.g. APPSTREAMKIT_AUTH_DISTRO_EXAMPLE_ORG_TOKEN -> Auth["distro_example_org"].
type EnvFeeder struct{}

func (f EnvFeeder) Feed(structure interface{}) error {
	cfg, ok := structure.(*Config)
	if !ok {
		return nil
	}

	if err := feedStructFromEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return err
	}

	if cfg.Auth == nil {
		cfg.Auth = make(map[string]AuthConfig)
	}

	var probe AuthConfig
	rv := reflect.ValueOf(probe)

	for i := 0; i < rv.NumField(); i++ {
		tag := rv.Type().Field(i).Tag.Get("env")
		if !strings.Contains(tag, "%s") {
			continue
		}

		prefix := strings.Split(tag, "%s")[0]
		suffix := strings.Split(tag, "%s")[1]

		for _, s := range os.Environ() {
			kv := strings.SplitN(s, "=", 2)
			if len(kv) != 2 || !strings.HasPrefix(kv[0], prefix) || !strings.HasSuffix(kv[0], suffix) {
				continue
			}

			index := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(kv[0], prefix), suffix))

			entry := cfg.Auth[index]
			authRv := reflect.ValueOf(&entry).Elem()

			for j := 0; j < authRv.NumField(); j++ {
				authTag := authRv.Type().Field(j).Tag.Get("env")
				if !strings.HasSuffix(kv[0], strings.Split(authTag, "%s")[1]) {
					continue
				}

				field := authRv.Field(j)
				switch field.Kind() {
				case reflect.String:
					field.SetString(kv[1])
				case reflect.Bool:
					b, err := strconv.ParseBool(kv[1])
					if err != nil {
						return err
					}
					field.SetBool(b)
				case reflect.Int:
					n, err := strconv.ParseInt(kv[1], 0, 32)
					if err != nil {
						return err
					}
					field.SetInt(n)
				}
			}

			cfg.Auth[index] = entry
		}
	}

	return nil
}

func feedStructFromEnv(v reflect.Value) error {
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		tag := v.Type().Field(i).Tag.Get("env")

		if field.Kind() == reflect.Struct {
			if err := feedStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		if tag == "" || strings.Contains(tag, "%s") {
			continue
		}

		raw, ok := os.LookupEnv(tag)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			field.SetBool(b)
		case reflect.Int:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(n)
		case reflect.Float64:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			field.SetFloat(n)
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(strings.Split(raw, ",")))
			}
		}
	}

	return nil
}

// Write does nothing: the environment is never written back to.
func (f EnvFeeder) Write(structure interface{}, merge bool) error {
	return nil
}

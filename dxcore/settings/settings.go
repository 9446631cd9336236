/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package settings loads application configuration from layered sources
// into a caller-supplied struct: an optional dotenv file, process
// environment variables, an optional configuration file (JSON or YAML by
// extension), and an explicit overrides map.
//
// Environment and dotenv keys use a double-underscore nesting delimiter, so
// MYAPP__SERVER__PORT populates server.port when the prefix is "MYAPP".
// Sources are merged in ascending precedence; the default order is dotenv,
// then environment, then file, then overrides, and callers can replace it
// with WithSourceOrder. Loading is fully explicit: nothing is read that was
// not named in an option, and no global state is consulted.
package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Source names one configuration layer for ordering purposes.
type Source string

const (
	// SourceDotenv is the dotenv file layer.
	SourceDotenv Source = "dotenv"
	// SourceEnv is the process environment layer.
	SourceEnv Source = "env"
	// SourceFile is the configuration file layer.
	SourceFile Source = "file"
	// SourceOverrides is the explicit overrides map layer.
	SourceOverrides Source = "overrides"
)

// nestDelimiter splits environment and dotenv keys into nested paths.
const nestDelimiter = "__"

// Options collects the configured layers.
type Options struct {
	file       string
	envPrefix  string
	useEnv     bool
	dotenvPath string
	overrides  map[string]any
	order      []Source
}

// Option configures a Load call.
type Option func(*Options)

// WithFile reads the named configuration file. The format is chosen by
// extension (.json, .yaml, .yml, .toml). A missing or malformed file fails
// the load.
func WithFile(path string) Option {
	return func(o *Options) { o.file = path }
}

// WithEnv enables the process environment layer. Only variables starting
// with prefix followed by the nesting delimiter are considered, and the
// prefix is stripped: with prefix "MYAPP", MYAPP__SERVER__PORT populates
// server.port.
func WithEnv(prefix string) Option {
	return func(o *Options) {
		o.useEnv = true
		o.envPrefix = prefix
	}
}

// WithDotenv reads the named dotenv file with the same key convention as
// WithEnv, including the prefix configured there. A missing file fails the
// load; callers wanting optional dotenv behavior should stat the path
// first.
func WithDotenv(path string) Option {
	return func(o *Options) { o.dotenvPath = path }
}

// WithOverrides merges an explicit settings map, keyed by nested lowercase
// paths ("server" -> {"port": 1}).
func WithOverrides(m map[string]any) Option {
	return func(o *Options) { o.overrides = m }
}

// WithSourceOrder replaces the default merge order. Sources are merged
// first to last, so the last named source has the highest precedence.
// Sources not named are skipped even when configured.
func WithSourceOrder(order ...Source) Option {
	return func(o *Options) { o.order = order }
}

// Load populates out from the configured layers and reports the first
// error encountered. out MUST be a pointer to a struct; fields are matched
// by lowercased name or mapstructure tag, as usual for viper.
func Load(out any, opts ...Option) error {
	o := Options{
		order: []Source{SourceDotenv, SourceEnv, SourceFile, SourceOverrides},
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	for _, src := range o.order {
		if err := mergeSource(v, src, &o); err != nil {
			return err
		}
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("settings: cannot decode into %T: %w", out, err)
	}
	return nil
}

func mergeSource(v *viper.Viper, src Source, o *Options) error {
	switch src {
	case SourceDotenv:
		if o.dotenvPath == "" {
			return nil
		}
		env, err := godotenv.Read(o.dotenvPath)
		if err != nil {
			return fmt.Errorf("settings: dotenv %s: %w", o.dotenvPath, err)
		}
		return v.MergeConfigMap(nestKeys(env, o.envPrefix))
	case SourceEnv:
		if !o.useEnv {
			return nil
		}
		env := make(map[string]string)
		for _, kv := range os.Environ() {
			k, val, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			env[k] = val
		}
		return v.MergeConfigMap(nestKeys(env, o.envPrefix))
	case SourceFile:
		if o.file == "" {
			return nil
		}
		fv := viper.New()
		fv.SetConfigFile(o.file)
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("settings: config file %s: %w", o.file, err)
		}
		return v.MergeConfigMap(fv.AllSettings())
	case SourceOverrides:
		if o.overrides == nil {
			return nil
		}
		return v.MergeConfigMap(o.overrides)
	default:
		return fmt.Errorf("settings: unknown source %q", src)
	}
}

// nestKeys converts flat prefixed keys into the nested map shape viper
// merges: with prefix "MYAPP", "MYAPP__SERVER__PORT" becomes
// {"server": {"port": ...}}. Keys without the prefix are dropped. An empty
// prefix admits every key.
func nestKeys(flat map[string]string, prefix string) map[string]any {
	out := make(map[string]any)
	for key, val := range flat {
		if prefix != "" {
			rest, ok := strings.CutPrefix(key, prefix+nestDelimiter)
			if !ok {
				continue
			}
			key = rest
		}
		parts := strings.Split(strings.ToLower(key), nestDelimiter)
		cur := out
		for i, part := range parts {
			if i == len(parts)-1 {
				cur[part] = val
				break
			}
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
	}
	return out
}

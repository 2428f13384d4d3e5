/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config binds the stable CLI flag surface to a model.Config,
// layering in BANNERGRAB_* environment variables and an optional config
// file through spf13/viper, and validates the result once at startup.
package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sabouaram/bannergrab/duration"
	liberr "github.com/sabouaram/bannergrab/errors"
	"github.com/sabouaram/bannergrab/logging"
	"github.com/sabouaram/bannergrab/model"
)

// envPrefix is the prefix viper strips/adds when matching flags to
// environment variables, e.g. --connect-timeout <-> BANNERGRAB_CONNECT_TIMEOUT.
const envPrefix = "BANNERGRAB"

// BindFlags registers the full stable flag surface (§6) onto flags, with
// the spec's documented defaults and shorthands. Call once per command.
func BindFlags(flags *pflag.FlagSet) {
	flags.StringP("host", "H", "", "target host (mutually exclusive with --input)")
	flags.Uint16P("port", "p", 0, "target port, or a filter when --input is used")
	flags.StringP("input", "i", "", "target file, one host:port (or [ipv6]:port) per line")

	flags.Int("concurrency", 64, "maximum in-flight targets")
	flags.Float64("rate", 64, "target dial rate, in targets per second")

	flags.Int("connect-timeout", 1500, "connect timeout, in milliseconds")
	flags.Int("read-timeout", 2000, "per-read timeout, in milliseconds")
	flags.Int("overall-timeout", 4000, "overall per-target timeout, in milliseconds")

	flags.Int("max-bytes", 4096, "maximum banner bytes captured per target")

	flags.String("mode", "passive", "dialogue mode: passive or active")
	flags.String("output", "jsonl", "output format: jsonl or pretty")
	flags.Bool("pretty", false, "force pretty output, overriding --output")

	flags.Bool("probe-weak-creds", false, "attempt documented default credentials where supported")
	flags.String("admin-addr", "", "optional host:port for the health/metrics endpoint")

	flags.String("log-level", "info", "panic, fatal, error, warn, info, or debug")
	flags.String("config", "", "optional YAML/TOML/JSON config file")
}

// Load binds flags into v, layers in the BANNERGRAB_ environment prefix and
// an optional --config file, then builds and validates a model.Config.
func Load(v *viper.Viper, flags *pflag.FlagSet) (*model.Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, liberr.New(ErrorConfigFile.Uint16(), ErrorConfigFile.Message(), err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, liberr.New(ErrorConfigFile.Uint16(), ErrorConfigFile.Message(), err)
		}
	}

	cfg := &model.Config{
		Host:       v.GetString("host"),
		Port:       uint16(v.GetUint("port")),
		InputFile:  v.GetString("input"),
		PortFilter: uint16(v.GetUint("port")),

		Concurrency: v.GetInt("concurrency"),
		Rate:        v.GetFloat64("rate"),

		ConnectTimeout: timeoutMillis(v, "connect-timeout"),
		ReadTimeout:    timeoutMillis(v, "read-timeout"),
		OverallTimeout: timeoutMillis(v, "overall-timeout"),

		MaxBytes: v.GetInt("max-bytes"),

		Mode:   model.ModeFromString(v.GetString("mode")),
		Output: resolveOutput(v),

		ProbeWeakCreds: v.GetBool("probe-weak-creds"),
		AdminAddr:      v.GetString("admin-addr"),
	}

	if v.GetString("input") == "" {
		cfg.PortFilter = 0
	} else {
		cfg.Port = 0
	}

	if err := Validate(cfg, v.GetString("mode"), v.GetString("output")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// timeoutMillis reads key as a plain millisecond count (the flag/env form),
// but tolerates a duration.Parse-able string like "1500ms" or "2s" when it
// comes from a --config file, so a config file can write timeouts in a
// human unit without the flag surface itself changing.
func timeoutMillis(v *viper.Viper, key string) time.Duration {
	if s, ok := v.Get(key).(string); ok {
		if d, err := duration.Parse(s); err == nil {
			return d.Time()
		}
	}
	return time.Duration(v.GetInt(key)) * time.Millisecond
}

func resolveOutput(v *viper.Viper) model.OutputFormat {
	if v.GetBool("pretty") {
		return model.Pretty
	}
	return model.OutputFormatFromString(v.GetString("output"))
}

// Validate enforces the invariants §6 documents: exactly one target source
// and a recognized mode/output. The overall-timeout floor is not rejected
// but derived: Validate raises cfg.OverallTimeout to the minimum the
// connect/read timeouts require (accounting for the active-FTP elongation)
// when the configured value falls short.
func Validate(cfg *model.Config, rawMode, rawOutput string) error {
	hasInline := cfg.Host != "" || cfg.Port != 0
	hasFile := cfg.InputFile != ""

	if hasInline && hasFile {
		return liberr.New(ErrorMutualExclusion.Uint16(), ErrorMutualExclusion.Message())
	}
	if !hasInline && !hasFile {
		return liberr.New(ErrorMissingTarget.Uint16(), ErrorMissingTarget.Message())
	}

	switch strings.ToLower(rawMode) {
	case "passive", "active":
	default:
		return liberr.New(ErrorInvalidMode.Uint16(), ErrorInvalidMode.Message())
	}

	switch strings.ToLower(rawOutput) {
	case "jsonl", "pretty":
	default:
		return liberr.New(ErrorInvalidOutput.Uint16(), ErrorInvalidOutput.Message())
	}

	port := cfg.Port
	if cfg.Mode == model.Active && hasFile {
		port = 21
	}
	if floor := cfg.MinOverallTimeout(port); cfg.OverallTimeout < floor {
		logging.Warn("raising overall-timeout to the connect/read timeout floor", logging.Fields{
			"configured_ms": cfg.OverallTimeout.Milliseconds(),
			"floor_ms":      floor.Milliseconds(),
		})
		cfg.OverallTimeout = floor
	}

	return nil
}

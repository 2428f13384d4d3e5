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

package model

import "time"

// Mode selects whether protocol dialogues may be driven (Active) or the
// engine only listens for what a server volunteers (Passive).
type Mode uint8

const (
	Passive Mode = iota
	Active
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "passive"
}

func ModeFromString(s string) Mode {
	if s == "active" {
		return Active
	}
	return Passive
}

// OutputFormat selects the sink's serialization.
type OutputFormat uint8

const (
	Jsonl OutputFormat = iota
	Pretty
)

func OutputFormatFromString(s string) OutputFormat {
	if s == "pretty" {
		return Pretty
	}
	return Jsonl
}

// Config is the immutable per-run configuration shared by every component.
// It is constructed once by the CLI/config layer and passed by pointer to
// every handler; nothing mutates it after Validate succeeds.
type Config struct {
	Host string
	Port uint16

	InputFile  string
	PortFilter uint16

	Concurrency int
	Rate        float64

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	OverallTimeout time.Duration

	MaxBytes int

	Mode   Mode
	Output OutputFormat

	ProbeWeakCreds bool
	AdminAddr      string
}

// EffectiveConnectTimeout applies the active-FTP elongation rule (§4.5 step 2
// of the engine's own process): active-mode port 21 dials get 4x the budget.
func (c *Config) EffectiveConnectTimeout(port uint16) time.Duration {
	if c.Mode == Active && port == 21 {
		return c.ConnectTimeout * 4
	}
	return c.ConnectTimeout
}

// MinOverallTimeout returns the smallest overall timeout Validate will accept
// for the given port, accounting for the active-FTP elongation.
func (c *Config) MinOverallTimeout(port uint16) time.Duration {
	return c.EffectiveConnectTimeout(port) + 2*c.ReadTimeout
}

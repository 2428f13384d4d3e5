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

// Package logging wraps sirupsen/logrus with the level-parsing and
// structured-field conventions used across the project, narrowed to what a
// single-binary CLI scanner needs: one process-lifetime logger, textual or
// JSON output, fields-per-target logging.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level mirrors logrus.Level but gives the CLI a case-insensitive,
// substring-tolerant string parser (e.g. "warn" and "warning" both resolve).
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case WarnLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	case PanicLevel:
		return "panic"
	default:
		return "info"
	}
}

func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	case PanicLevel:
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// LevelFromString returns the Level whose name contains s, defaulting to
// InfoLevel for anything unrecognized.
func LevelFromString(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(DebugLevel.String(), s) && s != "":
		return DebugLevel
	case strings.Contains(WarnLevel.String(), s) && s != "":
		return WarnLevel
	case strings.Contains(FatalLevel.String(), s) && s != "":
		return FatalLevel
	case strings.Contains(PanicLevel.String(), s) && s != "":
		return PanicLevel
	case strings.Contains(ErrorLevel.String(), s) && s != "":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

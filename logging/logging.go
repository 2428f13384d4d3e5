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

package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is the structured-field map passed to every log call, mirroring the
// project's own logger.Fields shape without the clone/merge machinery a
// single-process scanner never needs.
type Fields map[string]interface{}

func (f Fields) logrus() logrus.Fields {
	return logrus.Fields(f)
}

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Configure sets the process-wide level and output format. JSON selects
// logrus's JSONFormatter; anything else keeps the human-readable text one.
func Configure(level Level, format string) {
	std.SetLevel(level.Logrus())
	if format == "json" {
		std.SetFormatter(&logrus.JSONFormatter{})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func Debug(msg string, f Fields) { std.WithFields(f.logrus()).Debug(msg) }
func Info(msg string, f Fields)  { std.WithFields(f.logrus()).Info(msg) }
func Warn(msg string, f Fields)  { std.WithFields(f.logrus()).Warn(msg) }
func Error(msg string, f Fields) { std.WithFields(f.logrus()).Error(msg) }

// Fatal logs at fatal level and terminates the process (os.Exit(1)), matching
// logrus's own Fatal semantics. Reserved for setup failures the scheduler
// cannot recover from; the scan loop itself never calls this.
func Fatal(msg string, f Fields) { std.WithFields(f.logrus()).Fatal(msg) }

// Panic logs at panic level and then panics, matching logrus's own Panic
// semantics. Unused by the scan loop, which recovers panics itself (see
// scheduler.runOne); reserved for truly unrecoverable setup errors.
func Panic(msg string, f Fields) { std.WithFields(f.logrus()).Panic(msg) }

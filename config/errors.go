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

package config

import (
	"fmt"

	liberr "github.com/sabouaram/bannergrab/errors"
)

const (
	ErrorMutualExclusion liberr.CodeError = iota + liberr.MinPkgCliConfig
	ErrorMissingTarget
	ErrorInvalidMode
	ErrorInvalidOutput
	ErrorConfigFile
)

func init() {
	if liberr.ExistInMapMessage(ErrorMutualExclusion) {
		panic(fmt.Errorf("error code collision with package bannergrab/config"))
	}
	liberr.RegisterIdFctMessage(ErrorMutualExclusion, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorMutualExclusion:
		return "config : --host/--port and --input are mutually exclusive"
	case ErrorMissingTarget:
		return "config : one of --host/--port or --input is required"
	case ErrorInvalidMode:
		return "config : mode must be passive or active"
	case ErrorInvalidOutput:
		return "config : output must be jsonl or pretty"
	case ErrorConfigFile:
		return "config : failed to read config file"
	}

	return liberr.NullMessage
}

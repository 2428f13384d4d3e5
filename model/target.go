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

// Package model holds the data shared by every stage of the scan pipeline:
// targets, configuration, captured bytes, and the terminal per-target record.
package model

import (
	"net"
	"strconv"
)

// Target is one endpoint to probe: the host/port as given on the command line
// or input file, plus the resolved socket address actually dialed.
type Target struct {
	OriginalHost string
	OriginalPort uint16
	Resolved     *net.TCPAddr
}

func (t Target) String() string {
	return net.JoinHostPort(t.OriginalHost, strconv.Itoa(int(t.OriginalPort)))
}

// View is the read-only projection of a Target embedded in a ScanOutcome.
type View struct {
	Host string `json:"host"`
	Addr string `json:"addr"`
	Port uint16 `json:"port"`
}

func (t Target) View() View {
	addr := ""
	if t.Resolved != nil {
		addr = t.Resolved.IP.String()
	}
	return View{
		Host: t.OriginalHost,
		Addr: addr,
		Port: t.OriginalPort,
	}
}

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

package enrich

import (
	"context"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

// Run applies every enrichment this protocol is eligible for to fp, honoring
// deadline as a hard ceiling: a probe that can't start before deadline is
// skipped outright rather than attempted and cut short. Nothing here ever
// touches banner; it only adds entries to fp.Fields.
func Run(ctx context.Context, target model.Target, protocol string, banner []byte, probeWeakCreds bool, deadline time.Time) *model.Fingerprint {
	fp := &model.Fingerprint{Protocol: protocol, Fields: map[string]string{}}

	switch protocol {
	case "mssql":
		if v := ParseMssqlPrelogin(banner); v != "" {
			fp.Fields["mssql_version"] = v
		}
	case "ssh":
		for k, v := range EnrichSsh(banner) {
			fp.Fields[k] = v
		}
	case "smtp", "rdp":
		for k, v := range ParseNtlmChallenge(banner) {
			fp.Fields[k] = v
		}
	}

	if probeWeakCreds && time.Now().Before(deadline) {
		if hint, ok := WeakCredentialProbe(ctx, target, protocol, deadline); ok {
			fp.Fields["weak_credentials"] = hint
		}
	}

	if len(fp.Fields) == 0 {
		fp.Fields = nil
	}
	return fp
}

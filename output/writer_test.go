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

package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/output"
)

func TestOutput(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "output suite")
}

func captureOutcomes(format model.OutputFormat, outcomes ...model.ScanOutcome) string {
	var buf bytes.Buffer
	cfg := &model.Config{Output: format}
	wr := output.NewWithOutput(cfg, &buf)

	for _, o := range outcomes {
		wr.Emit(o)
	}
	wr.Shutdown()

	return buf.String()
}

var _ = Describe("Writer", func() {
	It("emits one JSONL object per outcome with timestamp and proto", func() {
		out := captureOutcomes(model.Jsonl, model.ScanOutcome{
			Target:      model.View{Host: "127.0.0.1", Addr: "127.0.0.1", Port: 22},
			Status:      model.Open,
			Banner:      model.Banner{Printable: "SSH-2.0-OpenSSH_9.3\r\n"},
			Fingerprint: &model.Fingerprint{Protocol: "ssh", Fields: map[string]string{}},
			Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		})

		lines := strings.Split(strings.TrimSpace(out), "\n")
		Expect(lines).To(HaveLen(1))

		var record map[string]interface{}
		Expect(json.Unmarshal([]byte(lines[0]), &record)).To(Succeed())
		Expect(record["ip"]).To(Equal("127.0.0.1"))
		Expect(record["proto"]).To(Equal("ssh"))
		Expect(record["timestamp"]).To(Equal("2026-01-02T03:04:05Z"))
		Expect(record).ToNot(HaveKey("webdriver"))
		Expect(record).ToNot(HaveKey("diagnostics"))
	})

	It("falls back to the printable banner for unrecognized protocols", func() {
		out := captureOutcomes(model.Jsonl, model.ScanOutcome{
			Target:      model.View{Host: "10.0.0.1", Addr: "10.0.0.1", Port: 9999},
			Status:      model.Open,
			Banner:      model.Banner{Printable: "hello there"},
			Fingerprint: &model.Fingerprint{Fields: map[string]string{}},
			Timestamp:   time.Now(),
		})

		var record map[string]interface{}
		Expect(json.Unmarshal([]byte(strings.TrimSpace(out)), &record)).To(Succeed())
		Expect(record["proto"]).To(Equal("unknown"))
		Expect(record["data"]).To(Equal("hello there"))
	})

	It("renders pretty lines with banner and diagnostics", func() {
		out := captureOutcomes(model.Pretty, model.ScanOutcome{
			Target:      model.View{Host: "10.0.0.2", Port: 80},
			Status:      model.Error,
			Banner:      model.Banner{Printable: ""},
			Fingerprint: &model.Fingerprint{Fields: map[string]string{}},
			Diagnostics: &model.Diagnostics{Stage: "connect", Message: "refused"},
			Timestamp:   time.Now(),
		})

		Expect(out).To(ContainSubstring("10.0.0.2 80 -> error"))
		Expect(out).To(ContainSubstring("diagnostics: [connect] refused"))
	})

	It("emits one JSONL line per outcome across multiple emits", func() {
		out := captureOutcomes(model.Jsonl,
			model.ScanOutcome{Target: model.View{Host: "a", Port: 1}, Fingerprint: &model.Fingerprint{Fields: map[string]string{}}, Timestamp: time.Now()},
			model.ScanOutcome{Target: model.View{Host: "b", Port: 2}, Fingerprint: &model.Fingerprint{Fields: map[string]string{}}, Timestamp: time.Now()},
		)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		Expect(lines).To(HaveLen(2))
	})
})

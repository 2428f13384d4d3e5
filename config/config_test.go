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

package config_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sabouaram/bannergrab/config"
	"github.com/sabouaram/bannergrab/model"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config suite")
}

func newFlags(args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("bannergrab", pflag.ContinueOnError)
	config.BindFlags(flags)
	Expect(flags.Parse(args)).To(Succeed())
	return flags
}

var _ = Describe("Load", func() {
	It("builds a valid config from inline host/port flags", func() {
		flags := newFlags("--host", "example.com", "--port", "443")
		cfg, err := config.Load(viper.New(), flags)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Host).To(Equal("example.com"))
		Expect(cfg.Port).To(Equal(uint16(443)))
		Expect(cfg.Concurrency).To(Equal(64))
		Expect(cfg.ConnectTimeout.Milliseconds()).To(Equal(int64(1500)))
	})

	It("rejects both --host/--port and --input together", func() {
		flags := newFlags("--host", "example.com", "--input", "targets.txt")
		_, err := config.Load(viper.New(), flags)

		Expect(err).To(HaveOccurred())
	})

	It("rejects neither --host/--port nor --input", func() {
		flags := newFlags()
		_, err := config.Load(viper.New(), flags)

		Expect(err).To(HaveOccurred())
	})

	It("treats --port as a filter when --input is set", func() {
		flags := newFlags("--input", "targets.txt", "--port", "22")
		cfg, err := config.Load(viper.New(), flags)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.InputFile).To(Equal("targets.txt"))
		Expect(cfg.PortFilter).To(Equal(uint16(22)))
	})

	It("raises overall-timeout to the connect/read timeout floor", func() {
		flags := newFlags("--host", "example.com", "--port", "80", "--overall-timeout", "10")
		cfg, err := config.Load(viper.New(), flags)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.OverallTimeout.Milliseconds()).To(Equal(int64(1500 + 2*2000)))
	})

	It("applies the active-FTP elongation when deriving a file-based active scan's floor", func() {
		flags := newFlags("--input", "targets.txt", "--mode", "active", "--overall-timeout", "3000")
		cfg, err := config.Load(viper.New(), flags)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.OverallTimeout.Milliseconds()).To(Equal(int64(1500*4 + 2*2000)))
	})

	It("forces pretty output when --pretty is set regardless of --output", func() {
		flags := newFlags("--host", "example.com", "--port", "80", "--output", "jsonl", "--pretty")
		cfg, err := config.Load(viper.New(), flags)

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Output).To(Equal(model.Pretty))
	})

	It("rejects an unrecognized mode", func() {
		flags := newFlags("--host", "example.com", "--port", "80", "--mode", "aggressive")
		_, err := config.Load(viper.New(), flags)

		Expect(err).To(HaveOccurred())
	})
})

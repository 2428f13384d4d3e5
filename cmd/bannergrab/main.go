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

// Command bannergrab is a concurrent network banner-grabbing and service
// fingerprinting engine: it dials every target in a run, captures what each
// service volunteers (or, in active mode, nudges out of it), classifies the
// bytes with a small rule-based fingerprinter, and streams one record per
// target to stdout as JSONL or a human-readable pretty format.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabouaram/bannergrab/admin"
	"github.com/sabouaram/bannergrab/config"
	"github.com/sabouaram/bannergrab/logging"
	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/output"
	"github.com/sabouaram/bannergrab/pipeline"
	"github.com/sabouaram/bannergrab/scheduler"
	"github.com/sabouaram/bannergrab/target"
)

const (
	exitConfigError = 2
	exitSetupError  = 1
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "bannergrab",
		Short:         "Concurrent network banner-grabbing and service fingerprinting engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cmd.Flags())
			if err != nil {
				return configError{err}
			}

			logging.Configure(logging.LevelFromString(v.GetString("log-level")), "text")
			return run(cmd.Context(), cfg)
		},
	}

	config.BindFlags(cmd.Flags())
	return cmd
}

// configError marks an error as a configuration failure so exitCodeFor can
// map it to exit code 2 instead of the generic setup-failure code.
type configError struct{ err error }

func (c configError) Error() string { return c.err.Error() }
func (c configError) Unwrap() error { return c.err }

func exitCodeFor(err error) int {
	if _, ok := err.(configError); ok {
		return exitConfigError
	}
	return exitSetupError
}

// run wires the C1-C8 pipeline together for one scan: target ingestion,
// the scheduler's rate-limited/concurrency-capped fan-out, the pipeline
// processor, the bounded output channel, and the optional admin listener.
func run(ctx context.Context, cfg *model.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var adminSrv *admin.Server
	if cfg.AdminAddr != "" {
		running := true
		adminSrv = admin.New(cfg.AdminAddr, func() bool { return running })
		if err := adminSrv.Start(); err != nil {
			return fmt.Errorf("admin listener: %w", err)
		}
		defer func() {
			running = false
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := adminSrv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("admin listener shutdown failed", logging.Fields{"error": err.Error()})
			}
		}()
	}

	targets, inputErr := target.Stream(ctx, cfg)
	sink := output.New(cfg)
	sched := scheduler.New(cfg, pipeline.New(), sink)

	return sched.Run(ctx, targets, inputErr)
}

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

// Package scheduler fans a target stream out across a bounded pool of
// in-flight processors, pacing new connections through a rate limiter and
// capping concurrency with a weighted semaphore. One goroutine per target;
// no shared per-target state.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sabouaram/bannergrab/admin"
	liberr "github.com/sabouaram/bannergrab/errors"
	"github.com/sabouaram/bannergrab/logging"
	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/ratelimit"
	"github.com/sabouaram/bannergrab/reader"
)

// Target processor is satisfied by *pipeline.Processor; declared here so the
// scheduler depends only on the shape it needs.
type Processor interface {
	ProcessTarget(ctx context.Context, target model.Target, cfg *model.Config) model.ScanOutcome
}

// Sink is satisfied by *output.Writer. Emit must not block past the sink's
// own backpressure policy; Shutdown is called exactly once after every
// spawned task has finished.
type Sink interface {
	Emit(outcome model.ScanOutcome)
	Shutdown()
}

// Scheduler owns the rate limiter and concurrency semaphore for one run.
type Scheduler struct {
	cfg   *model.Config
	proc  Processor
	sink  Sink
	limit *ratelimit.Limiter
	sem   *semaphore.Weighted
}

func New(cfg *model.Config, proc Processor, sink Sink) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		proc:  proc,
		sink:  sink,
		limit: ratelimit.New(cfg.Rate),
		sem:   semaphore.NewWeighted(int64(maxInt(cfg.Concurrency, 1))),
	}
}

// Run consumes targets until the channel closes, processing each with at
// most cfg.Concurrency in flight and at most cfg.Rate initiations per
// second, then drains every in-flight task and shuts the sink down. Run
// returns the first input error observed, if any, after draining.
func (s *Scheduler) Run(ctx context.Context, targets <-chan model.Target, inputErr <-chan error) error {
	var wg sync.WaitGroup

	for target := range targets {
		waitStart := time.Now()
		if err := s.limit.Acquire(ctx); err != nil {
			break
		}
		admin.ObserveRateLimiterWait(time.Since(waitStart))

		if err := s.sem.Acquire(ctx, 1); err != nil {
			break
		}

		admin.IncInFlight()
		wg.Add(1)
		go func(t model.Target) {
			defer wg.Done()
			defer s.sem.Release(1)
			defer admin.DecInFlight()

			outcome := s.runOne(ctx, t)
			admin.RecordOutcome(outcome.Status.String())
			s.sink.Emit(outcome)
		}(target)
	}

	wg.Wait()
	s.sink.Shutdown()

	select {
	case err := <-inputErr:
		return err
	default:
		return nil
	}
}

// runOne races ProcessTarget against the overall timeout and recovers a
// panicking processor into a synthesized error outcome, matching the
// reference engine's task-boundary guarantee that one target can never take
// down the run.
func (s *Scheduler) runOne(ctx context.Context, target model.Target) (outcome model.ScanOutcome) {
	done := make(chan model.ScanOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				e := liberr.NewErrorRecovered(fmt.Sprintf("target processor panicked: %v", r), "")
				logging.Error(e.Error(), logging.Fields{
					"target": target.String(),
				})
				done <- panicOutcome(target, e)
			}
		}()
		done <- s.proc.ProcessTarget(ctx, target, s.cfg)
	}()

	timer := time.NewTimer(s.cfg.OverallTimeout)
	defer timer.Stop()

	select {
	case outcome = <-done:
		return outcome
	case <-timer.C:
		return timeoutOutcome(target, "overall")
	case <-ctx.Done():
		return timeoutOutcome(target, "overall")
	}
}

func timeoutOutcome(target model.Target, stage string) model.ScanOutcome {
	return model.ScanOutcome{
		Target:      target.View(),
		Status:      model.StatusTimeout,
		Banner:      reader.Render(model.ReadResult{Reason: model.Timeout}),
		Diagnostics: &model.Diagnostics{Stage: stage, Message: "overall timeout"},
		Timestamp:   time.Now().UTC(),
	}
}

// panicOutcome synthesizes a terminal outcome from a recovered processor
// panic, carrying the liberr.Error's message (and stack frame) into
// Diagnostics so it survives into the JSONL sink alongside the target.
func panicOutcome(target model.Target, e liberr.Error) model.ScanOutcome {
	return model.ScanOutcome{
		Target:      target.View(),
		Status:      model.Error,
		Banner:      reader.Render(model.ReadResult{Reason: model.NotStarted}),
		Diagnostics: &model.Diagnostics{Stage: "panic", Message: e.StringError()},
		Timestamp:   time.Now().UTC(),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

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

package scheduler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/scheduler"
)

func TestScheduler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "scheduler suite")
}

type fakeSink struct {
	mu       sync.Mutex
	outcomes []model.ScanOutcome
	done     chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{done: make(chan struct{})}
}

func (f *fakeSink) Emit(o model.ScanOutcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
}

func (f *fakeSink) Shutdown() { close(f.done) }

func (f *fakeSink) snapshot() []model.ScanOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ScanOutcome, len(f.outcomes))
	copy(out, f.outcomes)
	return out
}

type fakeProcessor struct {
	inFlight  int32
	maxSeen   int32
	delay     time.Duration
	hang      bool
	panicOnce *int32
}

func (p *fakeProcessor) ProcessTarget(ctx context.Context, target model.Target, cfg *model.Config) model.ScanOutcome {
	n := atomic.AddInt32(&p.inFlight, 1)
	defer atomic.AddInt32(&p.inFlight, -1)
	for {
		old := atomic.LoadInt32(&p.maxSeen)
		if n <= old || atomic.CompareAndSwapInt32(&p.maxSeen, old, n) {
			break
		}
	}

	if p.panicOnce != nil && atomic.CompareAndSwapInt32(p.panicOnce, 1, 0) {
		panic("boom")
	}
	if p.hang {
		<-ctx.Done()
		<-time.After(time.Hour)
	}
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return model.ScanOutcome{Target: target.View(), Status: model.Open}
}

func targetsChan(n int) <-chan model.Target {
	ch := make(chan model.Target, n)
	for i := 0; i < n; i++ {
		ch <- model.Target{OriginalHost: "127.0.0.1", OriginalPort: uint16(1000 + i)}
	}
	close(ch)
	return ch
}

var _ = Describe("Scheduler.Run", func() {
	It("never exceeds the configured concurrency", func() {
		proc := &fakeProcessor{delay: 10 * time.Millisecond}
		sink := newFakeSink()
		cfg := &model.Config{Concurrency: 3, Rate: 1000, OverallTimeout: time.Second}

		s := scheduler.New(cfg, proc, sink)
		err := s.Run(context.Background(), targetsChan(20), nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(sink.snapshot()).To(HaveLen(20))
		Expect(atomic.LoadInt32(&proc.maxSeen)).To(BeNumerically("<=", 3))
	})

	It("emits a timeout outcome when the processor exceeds the overall deadline", func() {
		proc := &fakeProcessor{hang: true}
		sink := newFakeSink()
		cfg := &model.Config{Concurrency: 2, Rate: 1000, OverallTimeout: 20 * time.Millisecond}

		s := scheduler.New(cfg, proc, sink)
		err := s.Run(context.Background(), targetsChan(1), nil)

		Expect(err).ToNot(HaveOccurred())
		out := sink.snapshot()
		Expect(out).To(HaveLen(1))
		Expect(out[0].Status).To(Equal(model.StatusTimeout))
		Expect(out[0].Diagnostics.Stage).To(Equal("overall"))
	})

	It("synthesizes an outcome when the processor panics", func() {
		once := int32(1)
		proc := &fakeProcessor{panicOnce: &once}
		sink := newFakeSink()
		cfg := &model.Config{Concurrency: 2, Rate: 1000, OverallTimeout: time.Second}

		s := scheduler.New(cfg, proc, sink)
		err := s.Run(context.Background(), targetsChan(1), nil)

		Expect(err).ToNot(HaveOccurred())
		out := sink.snapshot()
		Expect(out).To(HaveLen(1))
		Expect(out[0].Status).To(Equal(model.Error))
		Expect(out[0].Diagnostics.Stage).To(Equal("panic"))
		Expect(out[0].Diagnostics.Message).To(ContainSubstring("boom"))
	})

	It("shuts the sink down exactly once after every task drains", func() {
		proc := &fakeProcessor{}
		sink := newFakeSink()
		cfg := &model.Config{Concurrency: 4, Rate: 1000, OverallTimeout: time.Second}

		s := scheduler.New(cfg, proc, sink)
		Expect(s.Run(context.Background(), targetsChan(5), nil)).To(Succeed())

		select {
		case <-sink.done:
		default:
			Fail("sink was not shut down")
		}
	})

	It("propagates the first input error after draining", func() {
		proc := &fakeProcessor{}
		sink := newFakeSink()
		cfg := &model.Config{Concurrency: 2, Rate: 1000, OverallTimeout: time.Second}

		inputErr := make(chan error, 1)
		inputErr <- context.DeadlineExceeded

		s := scheduler.New(cfg, proc, sink)
		err := s.Run(context.Background(), targetsChan(2), inputErr)
		Expect(err).To(Equal(context.DeadlineExceeded))
	})
})

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

package admin

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	liberr "github.com/sabouaram/bannergrab/errors"
	"github.com/sabouaram/bannergrab/logging"
)

// Server serves /healthz and /metrics on a dedicated listener, independent
// of the scan's own concurrency/rate budgets. A nil *Server is valid and a
// no-op, matching the endpoint's optional, --admin-addr-gated nature.
type Server struct {
	addr  string
	ready func() bool
	srv   *http.Server
	run   atomic.Bool
}

// New builds a Server bound to addr. ready reports whether the scheduler is
// still running; /healthz returns 503 once it returns false. A nil ready is
// treated as always-ready.
func New(addr string, ready func() bool) *Server {
	return &Server{addr: addr, ready: ready}
}

// Start binds the listener synchronously (surfacing a bad --admin-addr
// immediately) then serves it from a background goroutine, matching the
// teacher's Listen/PortInUse split of bind-now, serve-in-background.
func (s *Server) Start() error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return liberr.New(ErrorListen.Uint16(), ErrorListen.Message(), err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", s.healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.srv = &http.Server{Handler: engine}
	s.run.Store(true)

	go func() {
		logging.Info("admin listener starting", logging.Fields{"addr": s.addr})
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.run.Store(false)
			logging.Error("admin listener stopped", logging.Fields{"error": err.Error()})
		}
	}()

	return nil
}

func (s *Server) healthz(c *gin.Context) {
	if s.ready != nil && !s.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime_seconds": UptimeSeconds()})
}

// Shutdown gracefully stops the listener, waiting at most until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	s.run.Store(false)
	if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return liberr.New(ErrorShutdown.Uint16(), ErrorShutdown.Message(), err)
	}
	return nil
}

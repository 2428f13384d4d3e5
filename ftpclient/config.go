/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package ftpclient

import (
	"context"
	"time"

	libftp "github.com/jlaffaye/ftp"
	liberr "github.com/sabouaram/bannergrab/errors"
)

// Config describes a single FTP login attempt against a target host.
type Config struct {
	Hostname    string
	Login       string
	Password    string
	ConnTimeout time.Duration

	fctx func() context.Context
}

func (c *Config) RegisterContext(fct func() context.Context) {
	c.fctx = fct
}

// New dials the target and, when credentials are set, issues the login command.
// It never retries: the caller decides whether to try the next candidate credential.
func (c *Config) New() (*libftp.ServerConn, liberr.Error) {
	opt := make([]libftp.DialOption, 0, 2)

	if c.fctx != nil {
		opt = append(opt, libftp.DialWithContext(c.fctx()))
	}

	if c.ConnTimeout != 0 {
		opt = append(opt, libftp.DialWithTimeout(c.ConnTimeout))
	}

	cli, e := libftp.Dial(c.Hostname, opt...)
	if e != nil {
		return nil, ErrorFTPConnection.Error(e)
	}

	if c.Login == "" && c.Password == "" {
		return cli, nil
	} else if e = cli.Login(c.Login, c.Password); e != nil {
		return cli, ErrorFTPLogin.Error(e)
	}

	return cli, nil
}

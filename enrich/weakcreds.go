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

	"github.com/sabouaram/bannergrab/ftpclient"
	"github.com/sabouaram/bannergrab/model"
)

// weakCredPair is a well-known username/password combination worth a single
// login attempt. The list is deliberately short: this is a fingerprinting
// hint, not a credential-stuffing tool.
type weakCredPair struct {
	user string
	pass string
}

var weakCreds = []weakCredPair{
	{"anonymous", "anonymous"},
	{"root", "root"},
	{"root", ""},
	{"postgres", "postgres"},
	{"sa", "sa123"},
	{"admin", "admin"},
	{"default", ""},
}

// WeakCredentialProbe tries each well-known pair against the target's
// protocol (FTP, MySQL, Postgres, MSSQL or ClickHouse) until one succeeds or
// the remaining deadline runs out, returning "user:<name>" on the first hit.
func WeakCredentialProbe(ctx context.Context, target model.Target, protocol string, deadline time.Time) (string, bool) {
	if protocol == "ftp" {
		return weakCredProbeFTP(ctx, target, deadline)
	}

	drv := sqlDriverFromProtocol(protocol)
	if drv == driverNone {
		return "", false
	}
	return weakCredProbeSQL(drv, target, deadline)
}

func weakCredProbeFTP(ctx context.Context, target model.Target, deadline time.Time) (string, bool) {
	for _, cred := range weakCreds {
		if cred.user == "postgres" || cred.user == "sa" || cred.user == "default" {
			continue
		}
		if !time.Now().Before(deadline) {
			return "", false
		}

		cfg := &ftpclient.Config{
			Hostname:    target.String(),
			Login:       cred.user,
			Password:    cred.pass,
			ConnTimeout: time.Until(deadline),
		}
		cfg.RegisterContext(func() context.Context { return ctx })

		cli, err := ftpclient.New(cfg)
		if err != nil {
			continue
		}
		cli.Close()
		return "user:" + cred.user, true
	}
	return "", false
}

func weakCredProbeSQL(drv sqlDriver, target model.Target, deadline time.Time) (string, bool) {
	for _, cred := range weakCreds {
		if !time.Now().Before(deadline) {
			return "", false
		}

		dsn := drv.dsn(target.OriginalHost, target.OriginalPort, cred.user, cred.pass)
		db, err := gormOpen(drv, dsn)
		if err != nil {
			continue
		}
		closeDB(db)
		return "user:" + cred.user, true
	}
	return "", false
}

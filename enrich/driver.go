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

// Package enrich runs stateless, best-effort post-capture probes: weak
// credential checks and protocol-specific reply decoders. Nothing here ever
// mutates the raw captured ReadResult; it only produces derived fingerprint
// hints, and every probe honors the pipeline's remaining deadline.
package enrich

import (
	"strconv"
	"strings"

	drvch "gorm.io/driver/clickhouse"
	drvmys "gorm.io/driver/mysql"
	drvpsq "gorm.io/driver/postgres"
	drvsrv "gorm.io/driver/sqlserver"
	gormdb "gorm.io/gorm"
)

// sqlDriver mirrors the project's own gorm driver-selection pattern,
// narrowed to the four engines the weak-credential probe targets.
type sqlDriver string

const (
	driverNone       sqlDriver = ""
	driverMysql      sqlDriver = "mysql"
	driverPostgreSQL sqlDriver = "postgres"
	driverSQLServer  sqlDriver = "mssql"
	driverClickHouse sqlDriver = "clickhouse"
)

func sqlDriverFromProtocol(protocol string) sqlDriver {
	switch strings.ToLower(protocol) {
	case "mysql":
		return driverMysql
	case "postgres":
		return driverPostgreSQL
	case "mssql":
		return driverSQLServer
	case "clickhouse":
		return driverClickHouse
	default:
		return driverNone
	}
}

func (d sqlDriver) dialector(dsn string) gormdb.Dialector {
	switch d {
	case driverMysql:
		return drvmys.Open(dsn)
	case driverPostgreSQL:
		return drvpsq.Open(dsn)
	case driverSQLServer:
		return drvsrv.Open(dsn)
	case driverClickHouse:
		return drvch.Open(dsn)
	default:
		return nil
	}
}

func (d sqlDriver) dsn(host string, port uint16, user, pass string) string {
	p := strconv.Itoa(int(port))
	switch d {
	case driverMysql:
		return user + ":" + pass + "@tcp(" + host + ":" + p + ")/?timeout=1s"
	case driverPostgreSQL:
		return "host=" + host + " port=" + p + " user=" + user + " password=" + pass +
			" dbname=postgres sslmode=disable connect_timeout=1"
	case driverSQLServer:
		return "sqlserver://" + user + ":" + pass + "@" + host + ":" + p + "?connection+timeout=1"
	case driverClickHouse:
		return "clickhouse://" + user + ":" + pass + "@" + host + ":" + p + "/default?dial_timeout=1s"
	default:
		return ""
	}
}

// gormOpen authenticates a single credential pair against drv and returns the
// open *gorm.DB on success. The caller is responsible for closing it.
func gormOpen(drv sqlDriver, dsn string) (*gormdb.DB, error) {
	return gormdb.Open(drv.dialector(dsn), &gormdb.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
}

func closeDB(db *gormdb.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

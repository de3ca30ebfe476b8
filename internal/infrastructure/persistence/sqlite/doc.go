// Package sqlite implements the domain repository interfaces on top of
// database/sql and github.com/mattn/go-sqlite3.
//
// The tasks_fts virtual table declared in schema.sql requires the driver to
// be compiled with the sqlite_fts5 build tag (go build -tags sqlite_fts5);
// mattn/go-sqlite3 does not expose an fts5 toggle at runtime.
package sqlite

import (
	_ "github.com/mattn/go-sqlite3"
)

package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// schema is bootstrapped at open; the data file lives on the student's machine
// so there is no migration tooling, just idempotent DDL.
const schema = `
CREATE TABLE IF NOT EXISTS note (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	content          TEXT NOT NULL DEFAULT '',
	folder_path      TEXT NOT NULL DEFAULT '[]',
	tags             TEXT NOT NULL DEFAULT '[]',
	seqta_references TEXT NOT NULL DEFAULT '[]',
	word_count       INTEGER NOT NULL DEFAULT 0,
	character_count  INTEGER NOT NULL DEFAULT 0,
	reading_time     INTEGER NOT NULL DEFAULT 0,
	version          INTEGER NOT NULL DEFAULT 1,
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL,
	trashed_at       TIMESTAMP
);

CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
`

// Open opens (creating if needed) the app's sqlite data file and ensures the
// schema exists.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", conf.Database.Path+"?_fk=1")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", conf.Database.Path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "bootstrapping schema")
	}
	return db, nil
}

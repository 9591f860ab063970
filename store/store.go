// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package store implements an SQLite database
// to store proposed lineages,
// sample labels,
// and lineage aliases.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/lineage"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS proposals (
		id INTEGER PRIMARY KEY,
		parent TEXT NOT NULL,
		parent_nid TEXT NOT NULL,
		lineage TEXT NOT NULL UNIQUE,
		nid TEXT NOT NULL,
		score REAL NOT NULL,
		size INTEGER NOT NULL,
		level INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS labels (
		sample TEXT PRIMARY KEY,
		lineage TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS aliases (
		alias TEXT PRIMARY KEY,
		lineage TEXT NOT NULL
	)`,
}

// DB is a lineage database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens a database file,
// creating it if it does not exist.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("database %q: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database %q: %w", path, err)
	}
	for _, s := range schema {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			return nil, fmt.Errorf("database %q: create table: %w", path, err)
		}
	}
	return &DB{db: db, path: path}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the path of the database file.
func (d *DB) Path() string {
	return d.path
}

// replace runs fn in a transaction
// after removing all rows of a table.
func (d *DB) replace(ctx context.Context, table string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database %q: %w", d.path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("database %q: table %s: %w", d.path, table, err)
	}
	if err := fn(tx); err != nil {
		return fmt.Errorf("database %q: table %s: %w", d.path, table, err)
	}
	return tx.Commit()
}

// SetProposals replaces the proposals stored in the database.
func (d *DB) SetProposals(ctx context.Context, ps []lineage.Proposal) error {
	return d.replace(ctx, "proposals", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO proposals(parent, parent_nid, lineage, nid, score, size, level) VALUES(?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range ps {
			if _, err := stmt.ExecContext(ctx, p.Parent, p.ParentNode, p.Name, p.Node, p.Score, p.Size, p.Level); err != nil {
				return fmt.Errorf("proposal %q: %w", p.Name, err)
			}
		}
		return nil
	})
}

// Proposals returns the proposals stored in the database,
// in the order they were stored.
func (d *DB) Proposals(ctx context.Context) ([]lineage.Proposal, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT parent, parent_nid, lineage, nid, score, size, level FROM proposals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("database %q: %w", d.path, err)
	}
	defer rows.Close()

	var ps []lineage.Proposal
	for rows.Next() {
		var p lineage.Proposal
		if err := rows.Scan(&p.Parent, &p.ParentNode, &p.Name, &p.Node, &p.Score, &p.Size, &p.Level); err != nil {
			return nil, fmt.Errorf("database %q: %w", d.path, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database %q: %w", d.path, err)
	}
	return ps, nil
}

// SetLabels replaces the sample labels stored in the database.
func (d *DB) SetLabels(ctx context.Context, labels map[string]string) error {
	return d.replace(ctx, "labels", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO labels(sample, lineage) VALUES(?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for s, l := range labels {
			if _, err := stmt.ExecContext(ctx, s, l); err != nil {
				return fmt.Errorf("sample %q: %w", s, err)
			}
		}
		return nil
	})
}

// Labels returns the sample labels stored in the database.
func (d *DB) Labels(ctx context.Context) (map[string]string, error) {
	return d.pairs(ctx, `SELECT sample, lineage FROM labels`)
}

// SetAliases replaces the aliases stored in the database.
func (d *DB) SetAliases(ctx context.Context, t *alias.Table) error {
	return d.replace(ctx, "aliases", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO aliases(alias, lineage) VALUES(?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, a := range t.Aliases() {
			full, _ := t.Lookup(a)
			if _, err := stmt.ExecContext(ctx, a, full); err != nil {
				return fmt.Errorf("alias %q: %w", a, err)
			}
		}
		return nil
	})
}

// Aliases returns the aliases stored in the database
// as an alias table with the given depth.
func (d *DB) Aliases(ctx context.Context, depth int) (*alias.Table, error) {
	m, err := d.pairs(ctx, `SELECT alias, lineage FROM aliases`)
	if err != nil {
		return nil, err
	}
	t := alias.New(depth)
	for a, full := range m {
		t.Add(a, full)
	}
	return t, nil
}

func (d *DB) pairs(ctx context.Context, query string) (map[string]string, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("database %q: %w", d.path, err)
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("database %q: %w", d.path, err)
		}
		m[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database %q: %w", d.path, err)
	}
	return m, nil
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the sqlite driver
)

// Dialect is the flavour of SQL spoken by a database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

var tablePrefixPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLWallet keeps identities in a relational table keyed by
// (organization, label).
type SQLWallet struct {
	db      *sql.DB
	table   string
	dialect Dialect
}

// OpenSQLWallet connects to the configured database and creates the schema.
func OpenSQLWallet(cfg SQLConfig) (*SQLWallet, error) {
	var (
		driverName string
		dialect    Dialect
	)
	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "":
		driverName, dialect = "sqlite", SQLite
	case "postgres", "pgx":
		driverName, dialect = "pgx", Postgres
	default:
		return nil, errors.Errorf("unsupported sql driver %q", cfg.Driver)
	}
	if cfg.DataSource == "" {
		return nil, errors.New("sql data source is required")
	}
	db, err := sql.Open(driverName, cfg.DataSource)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening %s database", driverName)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	w, err := NewSQLWallet(db, dialect, cfg.TablePrefix)
	if err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

// NewSQLWallet wraps an open database and creates the identities table if
// it does not exist.
func NewSQLWallet(db *sql.DB, dialect Dialect, tablePrefix string) (*SQLWallet, error) {
	table := tablePrefix + "identities"
	if !tablePrefixPattern.MatchString(table) {
		return nil, errors.Errorf("invalid table prefix %q", tablePrefix)
	}
	w := &SQLWallet{db: db, table: table, dialect: dialect}
	if _, err := db.Exec(w.schema()); err != nil {
		return nil, errors.Wrapf(err, "failed creating table %s", table)
	}
	return w, nil
}

func (w *SQLWallet) schema() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	organization TEXT NOT NULL,
	label TEXT NOT NULL,
	mspid TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (organization, label)
)`, w.table)
}

// rebind rewrites ? placeholders to $n for postgres.
func (w *SQLWallet) rebind(query string) string {
	if w.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (w *SQLWallet) Exists(ctx context.Context, org, label string) bool {
	if err := validateKey(org, label); err != nil {
		return lookupFailed(org, label, err)
	}
	query := w.rebind(fmt.Sprintf("SELECT 1 FROM %s WHERE organization = ? AND label = ?", w.table))
	var one int
	err := w.db.QueryRowContext(ctx, query, org, label).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false
	case err != nil:
		return lookupFailed(org, label, err)
	}
	return true
}

func (w *SQLWallet) Put(ctx context.Context, id *Identity) error {
	if err := validateIdentity(id); err != nil {
		return err
	}
	raw, err := encodeIdentity(id)
	if err != nil {
		return errors.Wrap(err, "error encoding identity")
	}
	query := w.rebind(fmt.Sprintf(
		"INSERT INTO %s (organization, label, mspid, content, created_at) VALUES (?, ?, ?, ?, ?) ON CONFLICT (organization, label) DO NOTHING",
		w.table,
	))
	res, err := w.db.ExecContext(ctx, query, id.Organization, id.Label, id.MSPID, string(raw), time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "failed storing identity %s/%s", id.Organization, id.Label)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed reading affected rows")
	}
	if n == 0 {
		return ErrIdentityExists
	}
	logger.Debugw("stored identity", "organization", id.Organization, "label", id.Label)
	return nil
}

func (w *SQLWallet) Get(ctx context.Context, org, label string) (*Identity, error) {
	if err := validateKey(org, label); err != nil {
		return nil, err
	}
	query := w.rebind(fmt.Sprintf("SELECT content FROM %s WHERE organization = ? AND label = ?", w.table))
	var content string
	err := w.db.QueryRowContext(ctx, query, org, label).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading identity %s/%s", org, label)
	}
	return decodeIdentity(org, label, []byte(content))
}

// Labels lists the labels stored for an organization.
func (w *SQLWallet) Labels(org string) ([]string, error) {
	query := w.rebind(fmt.Sprintf("SELECT label FROM %s WHERE organization = ? ORDER BY label", w.table))
	rows, err := w.db.Query(query, org)
	if err != nil {
		return nil, errors.Wrapf(err, "failed listing identities of %s", org)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, errors.Wrap(err, "failed scanning label")
		}
		labels = append(labels, label)
	}
	return labels, errors.Wrap(rows.Err(), "failed iterating labels")
}

func (w *SQLWallet) Close() error {
	return w.db.Close()
}

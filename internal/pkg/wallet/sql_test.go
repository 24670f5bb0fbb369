/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockWallet(t *testing.T) (*SQLWallet, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS ledgergw_identities")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	w, err := NewSQLWallet(db, Postgres, "ledgergw_")
	require.NoError(t, err)
	return w, mock
}

func TestPostgresPut(t *testing.T) {
	w, mock := newMockWallet(t)
	id := testIdentity("student", "st01")

	insert := regexp.QuoteMeta("INSERT INTO ledgergw_identities (organization, label, mspid, content, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (organization, label) DO NOTHING")
	mock.ExpectExec(insert).
		WithArgs("student", "st01", "StudentMSP", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).
		WithArgs("student", "st01", "StudentMSP", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insert).
		WillReturnError(errors.New("connection reset"))

	require.NoError(t, w.Put(context.Background(), id))
	require.Equal(t, ErrIdentityExists, w.Put(context.Background(), id))
	require.EqualError(t, w.Put(context.Background(), id), "failed storing identity student/st01: connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExists(t *testing.T) {
	w, mock := newMockWallet(t)
	query := regexp.QuoteMeta("SELECT 1 FROM ledgergw_identities WHERE organization = $1 AND label = $2")

	mock.ExpectQuery(query).WithArgs("student", "st01").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(query).WithArgs("student", "st02").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(query).WithArgs("student", "st03").
		WillReturnError(errors.New("database is down"))

	require.True(t, w.Exists(context.Background(), "student", "st01"))
	require.False(t, w.Exists(context.Background(), "student", "st02"))
	require.False(t, w.Exists(context.Background(), "student", "st03"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	w, mock := newMockWallet(t)
	query := regexp.QuoteMeta("SELECT content FROM ledgergw_identities WHERE organization = $1 AND label = $2")
	raw, err := encodeIdentity(testIdentity("student", "st01"))
	require.NoError(t, err)

	mock.ExpectQuery(query).WithArgs("student", "st01").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow(string(raw)))
	mock.ExpectQuery(query).WithArgs("student", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"content"}))

	got, err := w.Get(context.Background(), "student", "st01")
	require.NoError(t, err)
	require.Equal(t, testIdentity("student", "st01"), got)

	_, err = w.Get(context.Background(), "student", "ghost")
	require.Equal(t, ErrIdentityNotFound, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRebind(t *testing.T) {
	w := &SQLWallet{dialect: SQLite}
	require.Equal(t, "a = ? AND b = ?", w.rebind("a = ? AND b = ?"))
	w.dialect = Postgres
	require.Equal(t, "a = $1 AND b = $2", w.rebind("a = ? AND b = ?"))
}

func TestInvalidTablePrefix(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = NewSQLWallet(db, SQLite, "bad-prefix;")
	require.EqualError(t, err, `invalid table prefix "bad-prefix;"`)
}

package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/canopy/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")
	fk := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key passthrough", fk, fk},
		{"other passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound, errDuplicate); got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"foreign key", &pgconn.PgError{Code: "23503"}, true},
		{"wrapped foreign key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.IsForeignKeyViolation(tt.err); got != tt.want {
				t.Errorf("IsForeignKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type failingBeginner struct{ err error }

func (f failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, f.err
}

func TestWithTxBeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	called := false

	_, err := repository.WithTx(context.Background(), failingBeginner{beginErr}, func(*sql.Tx) (int, error) {
		called = true
		return 1, nil
	})

	if !errors.Is(err, beginErr) {
		t.Errorf("WithTx() error = %v, want %v", err, beginErr)
	}
	if called {
		t.Error("fn should not run when BeginTx fails")
	}
}

type valueScanner struct {
	value any
	err   error
}

func (s valueScanner) Scan(dest ...any) error {
	if s.err != nil {
		return s.err
	}
	switch d := dest[0].(type) {
	case *string:
		*d = s.value.(string)
	case *int64:
		*d = s.value.(int64)
	}
	return nil
}

func TestScanValue(t *testing.T) {
	key, err := repository.ScanValue[string](valueScanner{value: "documents/a/model.json"})
	if err != nil || key != "documents/a/model.json" {
		t.Errorf("ScanValue[string] = (%q, %v)", key, err)
	}

	n, err := repository.ScanValue[int64](valueScanner{value: int64(3)})
	if err != nil || n != 3 {
		t.Errorf("ScanValue[int64] = (%d, %v)", n, err)
	}

	if _, err := repository.ScanValue[string](valueScanner{err: sql.ErrNoRows}); repository.MapError(err, errNotFound, errDuplicate) != errNotFound {
		t.Errorf("missing row = %v, want not found", err)
	}
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

type fakeExecutor struct {
	result sql.Result
	err    error
}

func (e fakeExecutor) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return e.result, e.err
}

func TestExecExpectOne(t *testing.T) {
	execErr := errors.New("connection reset")
	countErr := errors.New("driver cannot count")

	tests := []struct {
		name string
		exec fakeExecutor
		want error
	}{
		{"one row", fakeExecutor{result: fakeResult{rows: 1}}, nil},
		{"no rows", fakeExecutor{result: fakeResult{rows: 0}}, sql.ErrNoRows},
		{"exec error", fakeExecutor{err: execErr}, execErr},
		{"rows affected error", fakeExecutor{result: fakeResult{err: countErr}}, countErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repository.ExecExpectOne(context.Background(), tt.exec, "DELETE FROM representations WHERE id = $1", 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("ExecExpectOne() error = %v, want %v", err, tt.want)
			}
		})
	}
}

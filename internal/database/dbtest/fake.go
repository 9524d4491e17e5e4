// Package dbtest provides an in-memory database.DB double for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"groupie/internal/database"
)

type Call struct {
	Query string
	Args  []any
	InTx  bool
}

// FakeDB answers statements through the optional hook functions. A nil hook
// makes Exec report one affected row, QueryRow return database.ErrNoRows and
// Query return no rows.
type FakeDB struct {
	mu sync.Mutex

	ExecFunc     func(query string, args []any) (int64, error)
	QueryRowFunc func(query string, args []any) ([]any, error)
	QueryFunc    func(query string, args []any) ([][]any, error)

	BeginErr  error
	CommitErr error

	Calls []Call
	Txs   []*FakeTx
}

func New() *FakeDB {
	return &FakeDB{}
}

func (db *FakeDB) Ping(context.Context) error { return nil }
func (db *FakeDB) Close() error               { return nil }
func (db *FakeDB) SQLDB() *sql.DB             { return nil }

func (db *FakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	return db.exec(query, args, false)
}

func (db *FakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	return db.query(query, args, false)
}

func (db *FakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	return db.queryRow(query, args, false)
}

func (db *FakeDB) Begin(context.Context) (database.Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.BeginErr != nil {
		return nil, db.BeginErr
	}
	tx := &FakeTx{db: db}
	db.Txs = append(db.Txs, tx)
	return tx, nil
}

// Executed reports whether any recorded statement contains fragment.
func (db *FakeDB) Executed(fragment string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, c := range db.Calls {
		if strings.Contains(c.Query, fragment) {
			return true
		}
	}
	return false
}

func (db *FakeDB) LastTx() *FakeTx {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.Txs) == 0 {
		return nil
	}
	return db.Txs[len(db.Txs)-1]
}

func (db *FakeDB) record(query string, args []any, inTx bool) {
	db.mu.Lock()
	db.Calls = append(db.Calls, Call{Query: query, Args: args, InTx: inTx})
	db.mu.Unlock()
}

func (db *FakeDB) exec(query string, args []any, inTx bool) (int64, error) {
	db.record(query, args, inTx)
	if db.ExecFunc == nil {
		return 1, nil
	}
	return db.ExecFunc(query, args)
}

func (db *FakeDB) query(query string, args []any, inTx bool) (database.Rows, error) {
	db.record(query, args, inTx)
	if db.QueryFunc == nil {
		return &Rows{}, nil
	}
	vals, err := db.QueryFunc(query, args)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: vals, pos: -1}, nil
}

func (db *FakeDB) queryRow(query string, args []any, inTx bool) database.Row {
	db.record(query, args, inTx)
	if db.QueryRowFunc == nil {
		return Row{Err: database.ErrNoRows}
	}
	vals, err := db.QueryRowFunc(query, args)
	return Row{Values: vals, Err: err}
}

type FakeTx struct {
	db *FakeDB

	mu         sync.Mutex
	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	return t.db.exec(query, args, true)
}

func (t *FakeTx) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.query(query, args, true)
}

func (t *FakeTx) QueryRow(_ context.Context, query string, args ...any) database.Row {
	return t.db.queryRow(query, args, true)
}

func (t *FakeTx) Commit(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.RolledBack {
		return fmt.Errorf("tx already rolled back")
	}
	if t.db.CommitErr != nil {
		return t.db.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Committed {
		return nil
	}
	t.RolledBack = true
	return nil
}

type Row struct {
	Values []any
	Err    error
}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Values)
}

type Rows struct {
	rows [][]any
	pos  int
}

func (r *Rows) Close() {}

func (r *Rows) Next() bool {
	if r.rows == nil {
		return false
	}
	r.pos++
	return r.pos < len(r.rows)
}

func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.rows) {
		return fmt.Errorf("scan outside result set")
	}
	return assign(dest, r.rows[r.pos])
}

func (r *Rows) Err() error { return nil }

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan dest mismatch: want %d got %d", len(vals), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan dest %d is not a pointer", i)
		}
		target := dv.Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		case v.Type().ConvertibleTo(target.Type()):
			target.Set(v.Convert(target.Type()))
		default:
			return fmt.Errorf("scan type mismatch at %d: %s into %s", i, v.Type(), target.Type())
		}
	}
	return nil
}

// Package dbtest provides an in-memory db.DBTX for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pirate-admin/backend/internal/db"
)

var (
	_ db.DBTX  = (*FakeDB)(nil)
	_ pgx.Row  = (*Row)(nil)
	_ pgx.Rows = (*Rows)(nil)
)

// Call records one statement sent to the fake.
type Call struct {
	SQL  string
	Args []any
}

// FakeDB implements db.DBTX. Each hook receives the SQL text and arguments; unset hooks succeed
// with empty results (and QueryRow with pgx.ErrNoRows).
type FakeDB struct {
	mu    sync.Mutex
	calls []Call

	ExecFunc     func(sql string, args []any) (pgconn.CommandTag, error)
	QueryFunc    func(sql string, args []any) ([][]any, error)
	QueryRowFunc func(sql string, args []any) ([]any, error)
}

// Calls returns a copy of the recorded statements in order.
func (f *FakeDB) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsContaining returns the recorded statements whose SQL contains fragment.
func (f *FakeDB) CallsContaining(fragment string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if strings.Contains(c.SQL, fragment) {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeDB) record(sql string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{SQL: sql, Args: args})
}

func (f *FakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)
	if f.ExecFunc == nil {
		return pgconn.NewCommandTag(""), nil
	}
	return f.ExecFunc(sql, args)
}

func (f *FakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)
	if f.QueryFunc == nil {
		return &Rows{}, nil
	}
	data, err := f.QueryFunc(sql, args)
	if err != nil {
		return nil, err
	}
	return &Rows{data: data}, nil
}

func (f *FakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.record(sql, args)
	if f.QueryRowFunc == nil {
		return &Row{err: pgx.ErrNoRows}
	}
	values, err := f.QueryRowFunc(sql, args)
	if err == nil && values == nil {
		err = pgx.ErrNoRows
	}
	return &Row{values: values, err: err}
}

// Row is a single fake result row.
type Row struct {
	values []any
	err    error
}

func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

// Rows is a fake pgx.Rows over in-memory values.
type Rows struct {
	data   [][]any
	pos    int
	closed bool
	// ScanErr, when set, is returned by every Scan.
	ScanErr error
}

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Err() error                                   { return nil }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if r.pos == 0 || r.pos > len(r.data) {
		return fmt.Errorf("dbtest: Scan called without a current row")
	}
	return assign(dest, r.data[r.pos-1])
}

func (r *Rows) Values() ([]any, error) {
	if r.pos == 0 || r.pos > len(r.data) {
		return nil, fmt.Errorf("dbtest: Values called without a current row")
	}
	return r.data[r.pos-1], nil
}

// assign copies src into the pointers in dest. A nil source zeroes the target, a T source fills a
// *T target by allocating, and convertible kinds are converted.
func assign(dest []any, src []any) error {
	if len(dest) != len(src) {
		return fmt.Errorf("dbtest: scan expects %d columns, row has %d", len(dest), len(src))
	}
	for i := range dest {
		d := reflect.ValueOf(dest[i])
		if d.Kind() != reflect.Pointer || d.IsNil() {
			return fmt.Errorf("dbtest: column %d destination is not a non-nil pointer", i)
		}
		target := d.Elem()
		if src[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(src[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		case v.Type().ConvertibleTo(target.Type()) && v.Kind() != reflect.String:
			target.Set(v.Convert(target.Type()))
		default:
			return fmt.Errorf("dbtest: column %d: cannot scan %T into %s", i, src[i], target.Type())
		}
	}
	return nil
}

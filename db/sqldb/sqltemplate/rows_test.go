package sqltemplate

import (
	"fmt"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// fakeRows is an in-memory cursor over fixed rows of int64 and string columns.
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed int
}

var _ sqldb.Rows = (*fakeRows)(nil)

func newFakeRows(data ...[]any) *fakeRows {
	return &fakeRows{data: data}
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.pos == 0 || r.pos > len(r.data) {
		return fmt.Errorf("scan called without a current row")
	}
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("column %d: %T is not int64", i, v)
			}
			*d = n
		case *string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("column %d: %T is not string", i, v)
			}
			*d = s
		default:
			return fmt.Errorf("column %d: unsupported destination %T", i, dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

func (r *fakeRows) Close() error {
	r.closed++
	return nil
}

package sqltemplate

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

var errNilMapper = errors.New("row mapper is nil")

// cursorRow hides everything but Scan from the mapper
type cursorRow struct {
	rows sqldb.Rows
}

func (r cursorRow) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// ExecuteQuery runs stmt as a query and maps every row with mapper, in cursor order.
// The cursor is drained and closed before returning. On failure no partial result is returned.
func ExecuteQuery[T any](ctx context.Context, stmt sqldb.PreparedStmt, mapper sqldb.RowMapper[T]) (results []T, err error) {
	if mapper == nil {
		return nil, &sqldb.DataAccessError{Op: "map", Err: errNilMapper}
	}
	rows, err := stmt.Query(ctx)
	if err != nil {
		return nil, sqldb.Translate("query", "", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			results, err = nil, sqldb.Translate("close", "", cerr)
		}
	}()

	results = []T{}
	row := cursorRow{rows: rows}
	for rows.Next() {
		item, merr := mapper(row)
		if merr != nil {
			return nil, &sqldb.DataAccessError{
				Op:  "map",
				Msg: fmt.Sprintf("row %d: %v", len(results)+1, merr),
				Err: merr,
			}
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Translate("fetch", "", err)
	}
	return results, nil
}

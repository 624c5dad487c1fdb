package sqltemplate

import (
	"context"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// StatementCallback runs a prepared, bound statement.
// It must not close stmt; the template does.
type StatementCallback[T any] func(ctx context.Context, stmt sqldb.PreparedStmt) (T, error)

// updateCallback runs the statement as a mutation and reports the affected-row count.
func updateCallback(ctx context.Context, stmt sqldb.PreparedStmt) (int64, error) {
	result, err := stmt.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// queryCallback runs the statement as a query and maps every row.
func queryCallback[T any](mapper sqldb.RowMapper[T]) StatementCallback[[]T] {
	return func(ctx context.Context, stmt sqldb.PreparedStmt) ([]T, error) {
		return ExecuteQuery(ctx, stmt, mapper)
	}
}

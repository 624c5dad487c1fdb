package stdsql

import (
	"context"
	"database/sql"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

type PreparedStmt struct {
	sqldb.BindArgs // [Embedded] Bind is promoted
	stmt           *sql.Stmt
}

// Ensure stdsql.PreparedStmt implements sqldb.PreparedStmt interface
var _ sqldb.PreparedStmt = (*PreparedStmt)(nil)

func (p *PreparedStmt) Exec(ctx context.Context) (sqldb.Result, error) {
	args, err := p.Args()
	if err != nil {
		return nil, err
	}
	result, err := p.stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *PreparedStmt) Query(ctx context.Context) (sqldb.Rows, error) {
	args, err := p.Args()
	if err != nil {
		return nil, err
	}
	rows, err := p.stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *PreparedStmt) Close() error {
	return p.stmt.Close()
}

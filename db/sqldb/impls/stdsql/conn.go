package stdsql

import (
	"context"
	"database/sql"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

type Conn struct {
	conn *sql.Conn
}

// Ensure stdsql.Conn implements sqldb.Conn and sqldb.Beginner interfaces
var (
	_ sqldb.Conn     = (*Conn)(nil)
	_ sqldb.Beginner = (*Conn)(nil)
)

func (c *Conn) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	// NOTE: We can process a DBMS-specific error to produce a better abstracted error
	if err != nil {
		return nil, err
	}
	return &PreparedStmt{stmt: stmt}, nil
}

func (c *Conn) Begin(ctx context.Context) (sqldb.TxConn, error) {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

type Tx struct {
	tx pgx.Tx
}

// Ensure pgsql.Tx implements sqldb.TxConn
var _ sqldb.TxConn = (*Tx)(nil)

func (t *Tx) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	return prepare(ctx, t.tx, t.tx.Conn(), query)
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

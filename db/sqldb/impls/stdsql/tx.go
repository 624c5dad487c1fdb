package stdsql

import (
	"context"
	"database/sql"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

type Tx struct {
	tx *sql.Tx
}

// Ensure stdsql.Tx implements sqldb.TxConn interface
var _ sqldb.TxConn = (*Tx)(nil)

func (t *Tx) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &PreparedStmt{stmt: stmt}, nil
}

func (t *Tx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *Tx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

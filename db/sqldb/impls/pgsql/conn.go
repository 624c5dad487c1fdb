package pgsql

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// querier is the part of *pgx.Conn and pgx.Tx a statement runs on.
type querier interface {
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ deallocator = (*pgx.Conn)(nil)

var stmtSeq atomic.Uint64

type Conn struct {
	conn *pgxpool.Conn
}

// Ensure pgsql.Conn implements sqldb.Conn and sqldb.Beginner interfaces
var (
	_ sqldb.Conn     = (*Conn)(nil)
	_ sqldb.Beginner = (*Conn)(nil)
)

func (c *Conn) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	return prepare(ctx, c.conn.Conn(), c.conn.Conn(), query)
}

func (c *Conn) Begin(ctx context.Context) (sqldb.TxConn, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// prepare creates a named server-side statement, `?` placeholders rewritten to `$n`.
func prepare(ctx context.Context, q querier, conn *pgx.Conn, query string) (sqldb.PreparedStmt, error) {
	stmtName := fmt.Sprintf("stmt_%x", stmtSeq.Add(1))
	desc, err := q.Prepare(ctx, stmtName, sqldb.ReplaceStaticPlaceholders(query, DefaultPlaceholderPrefix))
	// NOTE: We can process a DBMS-specific error to produce a better abstracted error
	if err != nil {
		return nil, err
	}
	return &PreparedStmt{
		q:         q,
		conn:      conn,
		stmtName:  stmtName,
		numParams: len(desc.ParamOIDs),
	}, nil
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// deallocator drops a named server-side statement. *pgx.Conn is one.
type deallocator interface {
	Deallocate(ctx context.Context, name string) error
}

type PreparedStmt struct {
	sqldb.BindArgs
	q         querier
	conn      deallocator // owns the server-side statement
	stmtName  string
	numParams int
}

// Ensure pgsql.PreparedStmt implements sqldb.PreparedStmt interface
var _ sqldb.PreparedStmt = (*PreparedStmt)(nil)

func (p *PreparedStmt) Bind(ordinal int, value any) error {
	if ordinal > p.numParams {
		return fmt.Errorf("%w: %d, statement has %d parameters", sqldb.ErrInvalidOrdinal, ordinal, p.numParams)
	}
	return p.BindArgs.Bind(ordinal, value)
}

func (p *PreparedStmt) args() ([]any, error) {
	args, err := p.Args()
	if err != nil {
		return nil, err
	}
	if len(args) != p.numParams {
		return nil, fmt.Errorf("%w: %d of %d parameters set", sqldb.ErrNotBound, len(args), p.numParams)
	}
	return args, nil
}

func (p *PreparedStmt) Exec(ctx context.Context) (sqldb.Result, error) {
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	tag, err := p.q.Exec(ctx, p.stmtName, args...)
	if err != nil {
		return nil, err
	}
	return &Result{tag: tag}, nil
}

func (p *PreparedStmt) Query(ctx context.Context) (sqldb.Rows, error) {
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	rows, err := p.q.Query(ctx, p.stmtName, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{current: rows}, nil
}

// deallocateTimeout bounds Close on a hung connection.
const deallocateTimeout = 5 * time.Second

func (p *PreparedStmt) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), deallocateTimeout)
	defer cancel()
	return p.conn.Deallocate(ctx, p.stmtName)
}

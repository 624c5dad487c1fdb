package stdsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// Provider hands out *sql.Conn from the pool of DB.
type Provider struct {
	DB *sql.DB
}

// Ensure stdsql.Provider implements sqldb.ConnProvider interface
var _ sqldb.ConnProvider = (*Provider)(nil)

func (p *Provider) GetConn(ctx context.Context) (sqldb.Conn, error) {
	if p.DB == nil {
		return nil, fmt.Errorf("stdsql provider not initialized")
	}
	conn, err := p.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Conn{conn: conn}, nil
}

// ReleaseConn returns conn to the pool.
func (p *Provider) ReleaseConn(_ context.Context, conn sqldb.Conn) error {
	c, ok := conn.(*Conn)
	if !ok {
		return fmt.Errorf("stdsql provider cannot release foreign connection %T", conn)
	}
	return c.conn.Close()
}

package sqldb

import (
	"context"
)

//go:generate mockgen --build_flags=--mod=mod -package sqldbmock -destination ./sqldbmock/sqldb_mocks.go github.com/zeptools/gw-sqltemplate/db/sqldb ConnProvider,Conn,Beginner,TxConn,PreparedStmt,Rows,Result

// ConnProvider hands out physical connections.
// A Conn obtained from GetConn must be given back with ReleaseConn exactly once.
type ConnProvider interface {
	GetConn(ctx context.Context) (Conn, error)
	ReleaseConn(ctx context.Context, conn Conn) error
}

// Client is a ConnProvider with a lifecycle, built by a registered ClientFactory.
type Client interface {
	Init() error
	Close() error
	ConnProvider // Clients are handed to the template as providers, so, promote it
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error
}

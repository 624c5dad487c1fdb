package sqldb

import "context"

// TxConn is a Conn running inside a transaction.
// Only the code that began it commits, rolls back and releases the underlying connection.
type TxConn interface {
	Conn
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Beginner is implemented by connections that can start a transaction.
type Beginner interface {
	Begin(ctx context.Context) (TxConn, error)
}

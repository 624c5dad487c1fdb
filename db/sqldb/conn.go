package sqldb

import "context"

// Conn is a single physical connection, or a transaction running on one.
type Conn interface {
	// Prepare creates a statement for query on this connection.
	// Placeholders are `?`. Dialects with ordinal placeholders rewrite them.
	Prepare(ctx context.Context, query string) (PreparedStmt, error)
}

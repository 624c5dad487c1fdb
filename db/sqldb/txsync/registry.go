// Package txsync carries transaction-bound connections in a context.Context.
//
// A binding maps a sqldb.ConnProvider to the connection of the transaction in
// flight for it. Statements executed with a bound context reuse that connection
// instead of getting a fresh one. Bindings are written only by Run; everything
// else reads them.
package txsync

import (
	"context"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// Registry resolves the connection bound to a provider in ctx.
type Registry interface {
	Lookup(ctx context.Context, provider sqldb.ConnProvider) (sqldb.Conn, bool)
}

// ContextRegistry is the Registry backed by context values.
type ContextRegistry struct{}

var _ Registry = ContextRegistry{}

func (ContextRegistry) Lookup(ctx context.Context, provider sqldb.ConnProvider) (sqldb.Conn, bool) {
	return Lookup(ctx, provider)
}

// bindingKey keys a binding by provider identity.
// Providers must be comparable (pointer types are).
type bindingKey struct {
	provider sqldb.ConnProvider
}

// Bind returns a child of ctx in which conn is bound to provider.
func Bind(ctx context.Context, provider sqldb.ConnProvider, conn sqldb.Conn) context.Context {
	return context.WithValue(ctx, bindingKey{provider: provider}, conn)
}

// Lookup returns the connection bound to provider in ctx, if any.
func Lookup(ctx context.Context, provider sqldb.ConnProvider) (sqldb.Conn, bool) {
	conn, ok := ctx.Value(bindingKey{provider: provider}).(sqldb.Conn)
	return conn, ok && conn != nil
}

// Has reports whether ctx holds a connection bound to provider.
func Has(ctx context.Context, provider sqldb.ConnProvider) bool {
	_, ok := Lookup(ctx, provider)
	return ok
}

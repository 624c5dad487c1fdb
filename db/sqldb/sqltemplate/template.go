// Package sqltemplate executes SQL with positional parameters against a sqldb.ConnProvider
// and maps result rows with caller-supplied row mappers.
//
// Each call gets a connection, prepares and binds the statement, runs it, and
// releases everything it acquired, whatever the outcome. When the call's context
// carries a transaction connection for the provider (see txsync), that
// connection is borrowed instead and left open for the transaction owner.
// Every failure leaves the template as a *sqldb.DataAccessError.
package sqltemplate

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/txsync"
)

// Template is safe for concurrent use. It keeps no state between calls.
type Template struct {
	provider sqldb.ConnProvider
	registry txsync.Registry
	log      logrus.FieldLogger
}

type Option func(*Template)

// WithLogger replaces the standard logrus logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Template) {
		t.log = log
	}
}

// WithRegistry replaces the context-backed connection registry.
func WithRegistry(registry txsync.Registry) Option {
	return func(t *Template) {
		t.registry = registry
	}
}

func New(provider sqldb.ConnProvider, opts ...Option) *Template {
	t := &Template{
		provider: provider,
		registry: txsync.ContextRegistry{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Provider returns the provider connections come from.
func (t *Template) Provider() sqldb.ConnProvider {
	return t.provider
}

// Update executes query as a mutation and returns the affected-row count.
func (t *Template) Update(ctx context.Context, query string, params sqldb.Params) (int64, error) {
	return execute(ctx, t, "exec", query, params, updateCallback)
}

// QueryForList executes query and maps every row, in order. No rows gives an empty slice.
func QueryForList[T any](ctx context.Context, t *Template, query string, mapper sqldb.RowMapper[T], params sqldb.Params) ([]T, error) {
	return execute(ctx, t, "query", query, params, queryCallback(mapper))
}

// QueryForObject executes query and returns its only row.
// found is false when there is no row. Two or more rows fail with
// sqldb.ErrIncorrectResultSize: the query must not be able to return more than one.
func QueryForObject[T any](ctx context.Context, t *Template, query string, mapper sqldb.RowMapper[T], params sqldb.Params) (item T, found bool, err error) {
	results, err := QueryForList(ctx, t, query, mapper, params)
	if err != nil {
		return item, false, err
	}
	switch len(results) {
	case 0:
		return item, false, nil
	case 1:
		return results[0], true, nil
	default:
		return item, false, &sqldb.DataAccessError{
			Op:    "result",
			Query: query,
			Msg:   fmt.Sprintf("%v, got %d", sqldb.ErrIncorrectResultSize, len(results)),
			Err:   sqldb.ErrIncorrectResultSize,
		}
	}
}

// Execute runs callback on the prepared, bound statement with the same connection
// handling as Update and QueryForList.
func Execute[T any](ctx context.Context, t *Template, query string, params sqldb.Params, callback StatementCallback[T]) (T, error) {
	return execute(ctx, t, "exec", query, params, callback)
}

func execute[T any](
	ctx context.Context,
	t *Template,
	op string,
	query string,
	params sqldb.Params,
	callback StatementCallback[T],
) (result T, err error) {
	defer func() {
		if err != nil {
			var zero T
			result = zero // no partial results
		}
	}()

	conn, borrowed, err := t.getConn(ctx)
	if err != nil {
		return result, t.fail("acquire", query, err)
	}
	if !borrowed {
		defer func() {
			if rerr := t.provider.ReleaseConn(ctx, conn); rerr != nil {
				err = t.secondary("release", query, rerr, err)
			}
		}()
	}

	stmt, err := conn.Prepare(ctx, query)
	if err != nil {
		return result, t.fail("prepare", query, err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			err = t.secondary("close", query, cerr, err)
		}
	}()

	if err = params.BindTo(stmt); err != nil {
		return result, t.fail("bind", query, err)
	}

	if result, err = callback(ctx, stmt); err != nil {
		return result, t.fail(op, query, err)
	}
	return result, nil
}

// getConn borrows the context's transaction connection, or gets a fresh one.
func (t *Template) getConn(ctx context.Context) (conn sqldb.Conn, borrowed bool, err error) {
	if conn, ok := t.registry.Lookup(ctx, t.provider); ok {
		return conn, true, nil
	}
	conn, err = t.provider.GetConn(ctx)
	if err != nil {
		return nil, false, err
	}
	return conn, false, nil
}

// fail translates err, fills in the query, and logs it.
func (t *Template) fail(op, query string, err error) error {
	err = sqldb.Translate(op, query, err)
	var dae *sqldb.DataAccessError
	if errors.As(err, &dae) && dae.Query == "" {
		dae.Query = query
	}
	t.log.WithError(err).WithFields(logrus.Fields{"op": op, "query": query}).Error("sql statement failed")
	return err
}

// secondary handles a cleanup failure: with a primary error in flight it is logged and dropped.
func (t *Template) secondary(op, query string, cleanupErr, primary error) error {
	if primary != nil {
		t.log.WithError(cleanupErr).WithFields(logrus.Fields{"op": op, "query": query}).Warn("cleanup failed after statement error")
		return primary
	}
	return t.fail(op, query, cleanupErr)
}

package txsync

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

type runOptions struct {
	log logrus.FieldLogger
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithLogger sets the logger for cleanup failures that Run cannot return.
// Defaults to the logrus standard logger.
func WithLogger(log logrus.FieldLogger) RunOption {
	return func(o *runOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// Run executes fn inside a transaction on a fresh connection from provider.
//
// The transaction connection is bound to provider in the context given to fn,
// so statements run through that context join the transaction. fn returning nil
// commits; an error or a panic rolls back. The connection is released to the
// provider afterwards. If ctx already holds a binding for provider, fn runs
// within the existing transaction and Run neither commits nor releases.
func Run(ctx context.Context, provider sqldb.ConnProvider, fn func(ctx context.Context) error, opts ...RunOption) (err error) {
	if Has(ctx, provider) {
		return fn(ctx)
	}
	o := runOptions{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	conn, err := provider.GetConn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection failed: %w", err)
	}
	defer func() {
		if rerr := provider.ReleaseConn(ctx, conn); rerr != nil {
			if err == nil {
				err = fmt.Errorf("release connection failed: %w", rerr)
			} else {
				o.log.WithError(rerr).Warn("release connection failed after transaction error")
			}
		}
	}()

	beginner, ok := conn.(sqldb.Beginner)
	if !ok {
		return sqldb.ErrTxUnsupported
	}
	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		// rollback must reach the server even after ctx is cancelled
		rbCtx := context.WithoutCancel(ctx)
		if rberr := tx.Rollback(rbCtx); rberr != nil {
			o.log.WithError(rberr).Warn("transaction rollback failed")
		}
	}()

	if err = fn(Bind(ctx, provider, tx)); err != nil {
		return err
	}
	// a failed commit ends the transaction too, no rollback after it
	finished = true
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction failed: %w", err)
	}
	return nil
}

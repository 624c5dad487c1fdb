package sqldb

import (
	"context"
	"fmt"
)

// PreparedStmt is bound to one Conn and one SQL text.
// Parameters are set with Bind before Exec or Query; the statement must be closed once.
type PreparedStmt interface {
	// Bind sets the parameter at the 1-based ordinal.
	Bind(ordinal int, value any) error
	Exec(ctx context.Context) (Result, error)
	Query(ctx context.Context) (Rows, error)
	Close() error
}

// BindArgs collects bound values in ordinal order.
// Drivers that take arguments at execution time embed it in their statements.
type BindArgs struct {
	args  []any
	bound []bool
}

func (b *BindArgs) Bind(ordinal int, value any) error {
	if ordinal < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOrdinal, ordinal)
	}
	for len(b.args) < ordinal {
		b.args = append(b.args, nil)
		b.bound = append(b.bound, false)
	}
	b.args[ordinal-1] = value
	b.bound[ordinal-1] = true
	return nil
}

// Args returns the bound values. Every ordinal up to the highest bound one must be set.
func (b *BindArgs) Args() ([]any, error) {
	for i, ok := range b.bound {
		if !ok {
			return nil, fmt.Errorf("%w: ordinal %d", ErrNotBound, i+1)
		}
	}
	return b.args, nil
}

// Len is the number of parameter slots set so far
func (b *BindArgs) Len() int {
	return len(b.args)
}

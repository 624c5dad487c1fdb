package sqldb

import "fmt"

// Params is the ordered parameter sequence of one statement.
// Index i binds at ordinal i+1.
type Params []any

// P builds Params from values, in order.
func P(values ...any) Params {
	return Params(values)
}

// BindTo sets every value on stmt at its ordinal. It stops at the first failure.
func (p Params) BindTo(stmt PreparedStmt) error {
	for i, v := range p {
		if err := stmt.Bind(i+1, v); err != nil {
			return fmt.Errorf("bind parameter %d: %w", i+1, err)
		}
	}
	return nil
}

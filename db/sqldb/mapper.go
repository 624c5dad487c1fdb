package sqldb

// RowMapper converts the current row into a T.
// It must not keep row after returning.
type RowMapper[T any] func(row Row) (T, error)

type targetFieldsProvider interface {
	TargetFields() []any
}

type Scannable[T any] interface {
	~*T                  // Type Constraint: Underlying Type(~) = *T
	targetFieldsProvider // must implement targetFieldsProvider
}

// ScanMapper maps each row into a new Model, scanning columns into its TargetFields in order.
func ScanMapper[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
]() RowMapper[*M] {
	return func(row Row) (*M, error) {
		var item M     // struct with zero values for the fields
		p := MP(&item) // p is *M, which satisfies targetFieldsProvider interface
		if err := row.Scan(p.TargetFields()...); err != nil {
			return nil, err
		}
		return &item, nil
	}
}

// SingleColumnMapper scans a one-column row into a T.
func SingleColumnMapper[T any]() RowMapper[T] {
	return func(row Row) (T, error) {
		var v T
		err := row.Scan(&v)
		return v, err
	}
}

package sqldb

// Row is the positional view a RowMapper gets of the current cursor row.
type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Row
	Next() bool
	Close() error
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

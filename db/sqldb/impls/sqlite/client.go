package sqlite

import (
	"fmt"
	"net/url"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/impls/stdsql"
	_ "modernc.org/sqlite" // side-effect
)

const DBType = "sqlite"

func init() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *stdsql.Client {
	return &stdsql.Client{
		Conf:       conf,
		DriverName: "sqlite",
		BuildDSN:   BuildDSN,
	}
}

// BuildDSN uses conf.DB as the database file path.
// Connections wait on locks instead of failing with SQLITE_BUSY, and enforce foreign keys.
func BuildDSN(conf *sqldb.Conf) (string, error) {
	if conf.DB == "" {
		return "", fmt.Errorf("sqlite needs a database file path in `db`")
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + conf.DB + "?" + q.Encode(), nil
}

package mysql

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/impls/stdsql"
)

const DBType = "mysql"

func init() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *stdsql.Client {
	return &stdsql.Client{
		Conf:       conf,
		DriverName: "mysql",
		BuildDSN:   BuildDSN,
	}
}

// BuildDSN formats the connection string for conf.
// Sessions use ANSI_QUOTES and parse DATETIME into time.Time in conf.TZ.
func BuildDSN(conf *sqldb.Conf) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = conf.User
	cfg.Passwd = conf.PW
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port))
	cfg.DBName = conf.DB
	cfg.ParseTime = true
	cfg.MultiStatements = true
	cfg.Params = map[string]string{"sql_mode": "'ANSI_QUOTES'"}
	if conf.TZ != "" {
		loc, err := time.LoadLocation(conf.TZ)
		if err != nil {
			return "", fmt.Errorf("invalid tz %q: %w", conf.TZ, err)
		}
		cfg.Loc = loc
	}
	return cfg.FormatDSN(), nil
}

package sqldb

import (
	"time"

	"github.com/creasty/defaults"
)

type Conf struct {
	Type string `json:"type"` // mysql, pgsql, sqlite
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`  // database name. sqlite: file path
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	// Pool tuning
	MaxOpenConns       int `json:"max_open_conns" default:"10"`
	MaxIdleConns       int `json:"max_idle_conns" default:"10"`
	MinConns           int `json:"min_conns" default:"2"` // pgsql only
	ConnMaxLifetimeSec int `json:"conn_max_lifetime_sec" default:"180"`
}

// SetDefaults fills zero-valued pool settings.
func (c *Conf) SetDefaults() error {
	return defaults.Set(c)
}

func (c *Conf) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeSec) * time.Second
}

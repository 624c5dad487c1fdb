package stdsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

// Client is a sqldb.Client over database/sql. Driver packages fill DriverName and BuildDSN.
type Client struct {
	Provider // [Embedded] for Promoted Methods
	Conf     *sqldb.Conf

	DriverName string
	BuildDSN   func(conf *sqldb.Conf) (string, error)

	dsn string
}

// Ensure stdsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	var err error
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else if c.dsn, err = c.BuildDSN(c.Conf); err != nil {
		return fmt.Errorf("failed to build %s dsn: %w", c.DriverName, err)
	}
	if c.DB, err = sql.Open(c.DriverName, c.dsn); err != nil {
		return err
	}
	c.DB.SetConnMaxLifetime(c.Conf.ConnMaxLifetime())
	c.DB.SetMaxOpenConns(c.Conf.MaxOpenConns)
	c.DB.SetMaxIdleConns(c.Conf.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = c.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", c.DriverName, err)
	}
	logrus.Infof("%s client initialized", c.DriverName)
	return nil
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	logrus.Infof("closing %s client", c.DriverName)
	if err := c.DB.Close(); err != nil {
		return err
	}
	logrus.Infof("%s client closed", c.DriverName)
	return nil
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

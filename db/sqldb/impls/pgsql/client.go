package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
)

const DBType = "pgsql"

var DefaultPlaceholderPrefix = sqldb.PlaceholderPrefixForDBType[DBType]

func init() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Pool *pgxpool.Pool
	Conf *sqldb.Conf
	dsn  string
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	// DSN
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		// NOTE: sslmode=disable is often used for local dev, adjust as needed.
		c.dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Conf.Host,
			c.Conf.Port,
			c.Conf.User,
			c.Conf.PW,
			c.Conf.DB,
		)
		if c.Conf.TZ != "" {
			c.dsn += " timezone=" + c.Conf.TZ
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Open
	err := c.Open(ctx)
	if err != nil {
		return err
	}
	// Ping
	if err = c.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	logrus.Info("pgsql client initialized")
	return nil
}

func (c *Client) Open(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	config.MaxConns = int32(c.Conf.MaxOpenConns)
	config.MinConns = int32(c.Conf.MinConns)
	config.MaxConnLifetime = c.Conf.ConnMaxLifetime()
	c.Pool, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect pgx Pool: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.Pool == nil {
		return nil
	}
	logrus.Info("closing pgsql client")
	c.Pool.Close()
	logrus.Info("pgsql client closed")
	return nil
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Pool.Ping(ctx)
}

func (c *Client) GetConn(ctx context.Context) (sqldb.Conn, error) {
	if c.Pool == nil {
		return nil, fmt.Errorf("pgsql client not initialized")
	}
	conn, err := c.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection failed: %w", err)
	}
	return &Conn{conn: conn}, nil
}

func (c *Client) ReleaseConn(_ context.Context, conn sqldb.Conn) error {
	pc, ok := conn.(*Conn)
	if !ok {
		return fmt.Errorf("pgsql client cannot release foreign connection %T", conn)
	}
	pc.conn.Release()
	return nil
}

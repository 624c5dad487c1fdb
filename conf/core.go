package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/zeptools/gw-sqltemplate/db"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"

	// Registering Supported Implementations
	_ "github.com/zeptools/gw-sqltemplate/db/sqldb/impls/mysql"
	_ "github.com/zeptools/gw-sqltemplate/db/sqldb/impls/pgsql"
	_ "github.com/zeptools/gw-sqltemplate/db/sqldb/impls/sqlite"
)

// Core - common config
type Core struct {
	AppName  string `json:"app_name"`
	LogLevel string `json:"log_level" default:"info"` // logrus level name

	AppRoot             string                  `json:"-"` // Given to BaseInit
	SQLDBConfs          map[string]*sqldb.Conf  `json:"-"` // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client `json:"-"` // prepareSQLDBClients
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. apply the log level
func (c *Core) BaseInit(appRoot string) error {
	c.AppRoot = appRoot
	coreBytes, err := os.ReadFile(filepath.Join(appRoot, "config", ".core.json"))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(coreBytes, c); err != nil {
		return fmt.Errorf("invalid .core.json: %w", err)
	}
	if err = defaults.Set(c); err != nil {
		return err
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

func (c *Core) loadSQLDBConfs() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".sql-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err = json.Unmarshal(confBytes, &c.SQLDBConfs); err != nil {
		return fmt.Errorf("invalid .sql-databases.json: %w", err)
	}
	return nil
}

// prepareSQLDBClients - Build & Init SQL DB Clients
// Use after loadSQLDBConfs
func (c *Core) prepareSQLDBClients() error {
	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	for dbName, sqlDBConf := range c.SQLDBConfs {
		if err := c.prepareSQLDBClient(dbName, sqlDBConf); err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) prepareSQLDBClient(dbName string, sqlDBConf *sqldb.Conf) error {
	dbClient, err := sqldb.New(sqlDBConf)
	if err != nil {
		return fmt.Errorf("sql db %q: %w", dbName, err)
	}
	if err = dbClient.Init(); err != nil {
		db.CloseClient(dbName, dbClient)
		return fmt.Errorf("sql db %q: %w", dbName, err)
	}
	c.BackendSQLDBClients[dbName] = dbClient
	return nil
}

// PrepareSQLDatabases loads config/.sql-databases.json and initializes a Client per entry
func (c *Core) PrepareSQLDatabases() error {
	if err := c.loadSQLDBConfs(); err != nil {
		return err
	}
	return c.prepareSQLDBClients()
}

// PrepareSQLDatabase loads config/.sql-databases.json and initializes only the named entry.
// Other entries are parsed but never connected.
func (c *Core) PrepareSQLDatabase(name string) error {
	if err := c.loadSQLDBConfs(); err != nil {
		return err
	}
	sqlDBConf, ok := c.SQLDBConfs[name]
	if !ok || sqlDBConf == nil {
		return fmt.Errorf("sql db %q not found in .sql-databases.json", name)
	}
	if c.BackendSQLDBClients == nil {
		c.BackendSQLDBClients = make(map[string]sqldb.Client)
	}
	return c.prepareSQLDBClient(name, sqlDBConf)
}

// SQLDBClient returns the initialized client for a configured database name.
func (c *Core) SQLDBClient(name string) (sqldb.Client, error) {
	client, ok := c.BackendSQLDBClients[name]
	if !ok {
		return nil, fmt.Errorf("sql db %q not configured (have %v)", name, c.sqlDBNames())
	}
	return client, nil
}

func (c *Core) sqlDBNames() []string {
	names := make([]string, 0, len(c.BackendSQLDBClients))
	for name := range c.BackendSQLDBClients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Core) ResourceCleanUp() {
	logrus.Info("App Resource Cleaning Up...")
	for name, sqlDBClient := range c.BackendSQLDBClients {
		db.CloseClient(fmt.Sprintf("[%s] %s", sqlDBClient.GetConf().Type, name), sqlDBClient)
	}
	c.BackendSQLDBClients = nil
	logrus.Info("App Resource Cleanup Complete")
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/gw-sqltemplate/accounts"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/impls/sqlite"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/sqltemplate"
)

// setupAppRoot writes a config with a sqlite main entry next to a pgsql entry on a closed port.
func setupAppRoot(t *testing.T) (root, dbFile string) {
	t.Helper()
	root = t.TempDir()
	dbFile = filepath.ToSlash(filepath.Join(root, "accounts.db"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", ".core.json"), []byte(`{"app_name":"accounts","log_level":"warn"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", ".sql-databases.json"), []byte(`{
		"main": {"type": "sqlite", "db": "`+dbFile+`"},
		"ledger-pg": {"type": "pgsql", "host": "127.0.0.1", "port": 1, "user": "app", "pw": "app", "db": "ledger"}
	}`), 0o644))
	return root, dbFile
}

func runApp(t *testing.T, root string, args ...string) error {
	t.Helper()
	return newApp().Run(append([]string{"accounts", "--app-root", root}, args...))
}

func openStore(t *testing.T, dbFile string) *accounts.Store {
	t.Helper()
	conf := &sqldb.Conf{Type: sqlite.DBType, DB: dbFile}
	require.NoError(t, conf.SetDefaults())
	client := sqlite.NewClient(conf)
	require.NoError(t, client.Init())
	t.Cleanup(func() { _ = client.Close() })
	store, err := accounts.NewStore(sqltemplate.New(client), sqlite.DBType)
	require.NoError(t, err)
	return store
}

func TestApp(t *testing.T) {
	type testCase struct {
		description string
		test        func(t *testing.T)
	}

	var tests []testCase

	tests = append(tests, testCase{description: "commands run against the --db entry without dialing the others", test: func(t *testing.T) {
		root, dbFile := setupAppRoot(t)
		require.NoError(t, runApp(t, root, "init"))
		require.NoError(t, runApp(t, root, "add", "alice", "100"))
		require.NoError(t, runApp(t, root, "add", "bob", "50"))
		require.NoError(t, runApp(t, root, "transfer", "alice", "bob", "30"))
		require.NoError(t, runApp(t, root, "memo", "bob", "vip"))
		require.NoError(t, runApp(t, root, "--json", "list", "--min", "10"))
		require.NoError(t, runApp(t, root, "get", "bob"))

		store := openStore(t, dbFile)
		ctx := context.Background()
		alice, found, err := store.FindByName(ctx, "alice")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(70), alice.Balance)
		bob, found, err := store.FindByName(ctx, "bob")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(80), bob.Balance)
		assert.Equal(t, "vip", bob.Memo.ForceValue())
	}})
	tests = append(tests, testCase{description: "a failed transfer reports the error and keeps balances", test: func(t *testing.T) {
		root, dbFile := setupAppRoot(t)
		require.NoError(t, runApp(t, root, "init"))
		require.NoError(t, runApp(t, root, "add", "alice", "10"))
		err := runApp(t, root, "transfer", "alice", "nobody", "5")
		assert.ErrorIs(t, err, accounts.ErrAccountNotFound)

		n, err := openStore(t, dbFile).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}})
	tests = append(tests, testCase{description: "bad arguments are rejected before touching the store", test: func(t *testing.T) {
		root, _ := setupAppRoot(t)
		assert.ErrorContains(t, runApp(t, root, "add", "alice"), "usage: add")
		assert.ErrorContains(t, runApp(t, root, "add", "alice", "lots"), "invalid balance")
		assert.ErrorContains(t, runApp(t, root, "get"), "usage: get")
	}})
	tests = append(tests, testCase{description: "an unknown --db name fails at startup", test: func(t *testing.T) {
		root, _ := setupAppRoot(t)
		assert.ErrorContains(t, runApp(t, root, "--db", "reporting", "list"), `"reporting"`)
	}})
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) { test.test(t) })
	}
}

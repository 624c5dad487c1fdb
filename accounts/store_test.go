package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/impls/sqlite"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/sqltemplate"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/txsync"
	"github.com/zeptools/gw-sqltemplate/nullable"
)

// setupStore opens a fresh sqlite file with alice(100), bob(50) and carol(75).
func setupStore(t *testing.T) (*Store, *sqltemplate.Template) {
	t.Helper()
	conf := &sqldb.Conf{Type: sqlite.DBType, DB: filepath.Join(t.TempDir(), "accounts.db")}
	require.NoError(t, conf.SetDefaults())
	client := sqlite.NewClient(conf)
	require.NoError(t, client.Init())
	t.Cleanup(func() { _ = client.Close() })

	tmpl := sqltemplate.New(client)
	store, err := NewStore(tmpl, sqlite.DBType)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))
	for _, a := range []Account{{Name: "alice", Balance: 100}, {Name: "bob", Balance: 50}, {Name: "carol", Balance: 75}} {
		n, err := store.Add(ctx, a.Name, a.Balance)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	}
	return store, tmpl
}

func balanceOf(t *testing.T, ctx context.Context, store *Store, name string) int64 {
	t.Helper()
	a, found, err := store.FindByName(ctx, name)
	require.NoError(t, err)
	require.True(t, found, "account %s", name)
	return a.Balance
}

func TestStoreQueries(t *testing.T) {
	store, tmpl := setupStore(t)
	ctx := context.Background()

	t.Run("insert reports one affected row", func(t *testing.T) {
		n, err := store.Add(ctx, "dave", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
	t.Run("duplicate insert is a data access error", func(t *testing.T) {
		_, err := store.Add(ctx, "alice", 1)
		var dae *sqldb.DataAccessError
		require.ErrorAs(t, err, &dae)
		assert.Equal(t, "exec", dae.Op)
	})
	t.Run("list returns matching rows in order", func(t *testing.T) {
		items, err := store.ListBalanceAbove(ctx, 50)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "alice", items[0].Name)
		assert.Equal(t, int64(100), items[0].Balance)
		assert.Equal(t, "carol", items[1].Name)
		assert.Less(t, items[0].ID, items[1].ID)
	})
	t.Run("list with no match is empty", func(t *testing.T) {
		items, err := store.ListBalanceAbove(ctx, 1000)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
	t.Run("lookup of a missing account is absent", func(t *testing.T) {
		a, found, err := store.FindByName(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, a)
	})
	t.Run("single column lookup", func(t *testing.T) {
		id, found, err := store.FindIDByName(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Positive(t, id)
	})
	t.Run("object query over several rows violates the single result", func(t *testing.T) {
		_, found, err := sqltemplate.QueryForObject(ctx, tmpl, "SELECT id, name, balance, memo FROM accounts WHERE balance >= ?", accountMapper, sqldb.P(50))
		assert.False(t, found)
		assert.ErrorIs(t, err, sqldb.ErrIncorrectResultSize)
	})
	t.Run("a bad statement is a data access error", func(t *testing.T) {
		items, err := sqltemplate.QueryForList(ctx, tmpl, "SELECT nothing FROM nowhere", accountMapper, nil)
		assert.Nil(t, items)
		var dae *sqldb.DataAccessError
		require.ErrorAs(t, err, &dae)
		// sqlite compiles the statement lazily, so it may fail at query time
		assert.Contains(t, []string{"prepare", "query"}, dae.Op)
		assert.Equal(t, "SELECT nothing FROM nowhere", dae.Query)
	})
	t.Run("memo round-trips NULL", func(t *testing.T) {
		a, _, err := store.FindByName(ctx, "carol")
		require.NoError(t, err)
		assert.True(t, a.Memo.IsNil())

		n, err := store.SetMemo(ctx, "carol", nullable.Of("vip"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		a, _, err = store.FindByName(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, "vip", a.Memo.ForceValue())

		_, err = store.SetMemo(ctx, "carol", nullable.Null[string]())
		require.NoError(t, err)
		a, _, err = store.FindByName(ctx, "carol")
		require.NoError(t, err)
		assert.True(t, a.Memo.IsNil())
	})
	t.Run("repeating an update leaves the same state", func(t *testing.T) {
		n, err := store.SetBalance(ctx, "bob", 60)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = store.SetBalance(ctx, "bob", 60)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, int64(60), balanceOf(t, ctx, store, "bob"))
	})
}

func TestStoreTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("a successful transfer commits both sides", func(t *testing.T) {
		store, _ := setupStore(t)
		require.NoError(t, store.Transfer(ctx, "alice", "bob", 30))
		assert.Equal(t, int64(70), balanceOf(t, ctx, store, "alice"))
		assert.Equal(t, int64(80), balanceOf(t, ctx, store, "bob"))
	})
	t.Run("insufficient funds change nothing", func(t *testing.T) {
		store, _ := setupStore(t)
		err := store.Transfer(ctx, "bob", "alice", 51)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, int64(50), balanceOf(t, ctx, store, "bob"))
		assert.Equal(t, int64(100), balanceOf(t, ctx, store, "alice"))
	})
	t.Run("a missing recipient rolls back the debit", func(t *testing.T) {
		store, _ := setupStore(t)
		err := store.Transfer(ctx, "alice", "nobody", 10)
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.Equal(t, int64(100), balanceOf(t, ctx, store, "alice"))
	})
	t.Run("a missing sender", func(t *testing.T) {
		store, _ := setupStore(t)
		err := store.Transfer(ctx, "nobody", "alice", 10)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		store, _ := setupStore(t)
		assert.ErrorIs(t, store.Transfer(ctx, "alice", "bob", 0), ErrInvalidAmount)
		assert.ErrorIs(t, store.Transfer(ctx, "alice", "bob", -5), ErrInvalidAmount)
	})
}

func TestStoreInsideTransaction(t *testing.T) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	t.Run("uncommitted writes are visible to statements of the same transaction", func(t *testing.T) {
		store, tmpl := setupStore(t)
		err := txsync.Run(ctx, tmpl.Provider(), func(ctx context.Context) error {
			n, err := store.Add(ctx, "erin", 5)
			if err != nil {
				return err
			}
			assert.Equal(t, int64(1), n)
			a, found, err := store.FindByName(ctx, "erin")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, int64(5), a.Balance)
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)
		_, found, err := store.FindByName(ctx, "erin")
		require.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("a nested transaction joins the outer one", func(t *testing.T) {
		store, tmpl := setupStore(t)
		err := txsync.Run(ctx, tmpl.Provider(), func(ctx context.Context) error {
			if err := store.Transfer(ctx, "alice", "carol", 25); err != nil {
				return err
			}
			_, err := store.SetBalance(ctx, "bob", 0)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(75), balanceOf(t, ctx, store, "alice"))
		assert.Equal(t, int64(100), balanceOf(t, ctx, store, "carol"))
		assert.Equal(t, int64(0), balanceOf(t, ctx, store, "bob"))
	})
	t.Run("a failure after a nested transfer rolls back the transfer too", func(t *testing.T) {
		store, tmpl := setupStore(t)
		err := txsync.Run(ctx, tmpl.Provider(), func(ctx context.Context) error {
			if err := store.Transfer(ctx, "alice", "carol", 25); err != nil {
				return err
			}
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)
		assert.Equal(t, int64(100), balanceOf(t, ctx, store, "alice"))
		assert.Equal(t, int64(75), balanceOf(t, ctx, store, "carol"))
	})
}

// Package accounts is a small balance ledger on top of sqltemplate.
package accounts

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/zeptools/gw-sqltemplate/db/sqldb"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/sqltemplate"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/txsync"
	"github.com/zeptools/gw-sqltemplate/nullable"
)

//go:embed sql
var sqlFS embed.FS

const stmtGroup = "accounts"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

var accountMapper = sqldb.ScanMapper[Account, *Account]()

type Store struct {
	tmpl  *sqltemplate.Template
	stmts *sqldb.RawSQLStore
}

// NewStore loads the account statements for dbType and runs them through tmpl.
func NewStore(tmpl *sqltemplate.Template, dbType string) (*Store, error) {
	stmts := sqldb.NewRawStore()
	if err := stmts.Load(sqlFS, stmtGroup, dbType); err != nil {
		return nil, err
	}
	return &Store{tmpl: tmpl, stmts: stmts}, nil
}

func (s *Store) stmt(name string) string {
	return s.stmts.MustGet(sqldb.StoreGroupedStmtKey{Group: stmtGroup, StmtName: name}.String())
}

func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.tmpl.Update(ctx, s.stmt("create_table"), nil)
	return err
}

// Add inserts a new account and returns the affected-row count.
func (s *Store) Add(ctx context.Context, name string, balance int64) (int64, error) {
	return s.tmpl.Update(ctx, s.stmt("insert"), sqldb.P(name, balance))
}

// SetBalance overwrites the balance of name. Repeating it leaves the same state.
func (s *Store) SetBalance(ctx context.Context, name string, balance int64) (int64, error) {
	return s.tmpl.Update(ctx, s.stmt("set_balance"), sqldb.P(balance, name))
}

// SetMemo sets or, with a NULL memo, clears the memo of name.
func (s *Store) SetMemo(ctx context.Context, name string, memo nullable.Value[string]) (int64, error) {
	return s.tmpl.Update(ctx, s.stmt("set_memo"), sqldb.P(memo, name))
}

// ListBalanceAbove returns accounts with balance > minBalance, by id.
func (s *Store) ListBalanceAbove(ctx context.Context, minBalance int64) ([]*Account, error) {
	return sqltemplate.QueryForList(ctx, s.tmpl, s.stmt("list_balance_above"), accountMapper, sqldb.P(minBalance))
}

func (s *Store) FindByName(ctx context.Context, name string) (*Account, bool, error) {
	return sqltemplate.QueryForObject(ctx, s.tmpl, s.stmt("find_by_name"), accountMapper, sqldb.P(name))
}

func (s *Store) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	return sqltemplate.QueryForObject(ctx, s.tmpl, s.stmt("find_id_by_name"), sqldb.SingleColumnMapper[int64](), sqldb.P(name))
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	n, _, err := sqltemplate.QueryForObject(ctx, s.tmpl, s.stmt("count"), sqldb.SingleColumnMapper[int64](), nil)
	return n, err
}

// Transfer moves amount from one account to another in a single transaction.
// Nothing changes when either side fails.
func (s *Store) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return txsync.Run(ctx, s.tmpl.Provider(), func(ctx context.Context) error {
		n, err := s.tmpl.Update(ctx, s.stmt("debit"), sqldb.P(amount, from, amount))
		if err != nil {
			return err
		}
		if n == 0 {
			if _, found, err := s.FindIDByName(ctx, from); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("%w: %s", ErrAccountNotFound, from)
			}
			return fmt.Errorf("%w: %s", ErrInsufficientFunds, from)
		}
		n, err = s.tmpl.Update(ctx, s.stmt("credit"), sqldb.P(amount, to))
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, to)
		}
		return nil
	})
}

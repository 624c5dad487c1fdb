package accounts

import "github.com/zeptools/gw-sqltemplate/nullable"

type Account struct {
	ID      int64                  `json:"id"`
	Name    string                 `json:"name"`
	Balance int64                  `json:"balance"`
	Memo    nullable.Value[string] `json:"memo"`
}

// TargetFields - column order of `SELECT id, name, balance, memo`
func (a *Account) TargetFields() []any {
	return []any{&a.ID, &a.Name, &a.Balance, &a.Memo}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/zeptools/gw-sqltemplate/accounts"
	"github.com/zeptools/gw-sqltemplate/conf"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/sqltemplate"
	"github.com/zeptools/gw-sqltemplate/nullable"
)

var core conf.Core

type action func(ctx context.Context, c *cli.Context, s *accounts.Store) error

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "accounts",
		Usage: "balance ledger over the sql template",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "app-root", Value: ".", Usage: "directory holding config/.core.json and config/.sql-databases.json", EnvVars: []string{"APP_ROOT"}},
			&cli.StringFlag{Name: "db", Value: "main", Usage: "name of the sql database in config/.sql-databases.json"},
			&cli.BoolFlag{Name: "json", Usage: "print accounts as JSON lines"},
		},
		Before: func(c *cli.Context) error {
			if err := core.BaseInit(c.String("app-root")); err != nil {
				return err
			}
			return core.PrepareSQLDatabase(c.String("db"))
		},
		After: func(_ *cli.Context) error {
			core.ResourceCleanUp()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "create the accounts table",
				Action: withStore(initTable),
			},
			{
				Name:      "add",
				Usage:     "add an account",
				ArgsUsage: "NAME BALANCE",
				Action:    withStore(add),
			},
			{
				Name:   "list",
				Usage:  "list accounts with a balance above --min",
				Flags:  []cli.Flag{&cli.Int64Flag{Name: "min", Value: 0}},
				Action: withStore(list),
			},
			{
				Name:      "get",
				Usage:     "show one account",
				ArgsUsage: "NAME",
				Action:    withStore(get),
			},
			{
				Name:      "memo",
				Usage:     "set the memo of an account, or clear it when TEXT is omitted",
				ArgsUsage: "NAME [TEXT]",
				Action:    withStore(memo),
			},
			{
				Name:      "transfer",
				Usage:     "move an amount between two accounts in one transaction",
				ArgsUsage: "FROM TO AMOUNT",
				Action:    withStore(transfer),
			},
		},
	}
}

func withStore(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		client, err := core.SQLDBClient(c.String("db"))
		if err != nil {
			return err
		}
		store, err := accounts.NewStore(sqltemplate.New(client), client.GetConf().Type)
		if err != nil {
			return err
		}
		return fn(ctx, c, store)
	}
}

func initTable(ctx context.Context, _ *cli.Context, s *accounts.Store) error {
	return s.CreateTable(ctx)
}

func add(ctx context.Context, c *cli.Context, s *accounts.Store) error {
	args := c.Args()
	if args.Len() != 2 {
		return fmt.Errorf("usage: add NAME BALANCE")
	}
	balance, err := strconv.ParseInt(args.Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}
	n, err := s.Add(ctx, args.Get(0), balance)
	if err != nil {
		return err
	}
	logrus.Infof("%d account(s) added", n)
	return nil
}

func list(ctx context.Context, c *cli.Context, s *accounts.Store) error {
	items, err := s.ListBalanceAbove(ctx, c.Int64("min"))
	if err != nil {
		return err
	}
	for _, a := range items {
		if err = printAccount(c, a); err != nil {
			return err
		}
	}
	return nil
}

func get(ctx context.Context, c *cli.Context, s *accounts.Store) error {
	args := c.Args()
	if args.Len() != 1 {
		return fmt.Errorf("usage: get NAME")
	}
	a, found, err := s.FindByName(ctx, args.First())
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("account %q not found", args.First())
	}
	return printAccount(c, a)
}

func memo(ctx context.Context, c *cli.Context, s *accounts.Store) error {
	args := c.Args()
	if args.Len() < 1 || args.Len() > 2 {
		return fmt.Errorf("usage: memo NAME [TEXT]")
	}
	text := nullable.Null[string]()
	if args.Len() == 2 {
		text = nullable.Of(args.Get(1))
	}
	n, err := s.SetMemo(ctx, args.First(), text)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %q not found", args.First())
	}
	return nil
}

func transfer(ctx context.Context, c *cli.Context, s *accounts.Store) error {
	args := c.Args()
	if args.Len() != 3 {
		return fmt.Errorf("usage: transfer FROM TO AMOUNT")
	}
	amount, err := strconv.ParseInt(args.Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if err = s.Transfer(ctx, args.Get(0), args.Get(1), amount); err != nil {
		return err
	}
	logrus.Infof("moved %d from %s to %s", amount, args.Get(0), args.Get(1))
	return nil
}

func printAccount(c *cli.Context, a *accounts.Account) error {
	if c.Bool("json") {
		data, err := json.Marshal(a)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("%d\t%s\t%d\t%s\n", a.ID, a.Name, a.Balance, a.Memo.ForceValue())
	return nil
}

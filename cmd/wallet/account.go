package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

var listaccounts = cli.Command{
	Name:   "listaccounts",
	Usage:  "list all tracked accounts, pinned first",
	Action: listAccountsAction,
}

var addaccount = cli.Command{
	Name:  "addaccount",
	Usage: "start tracking an account by address or mnemonic",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the ledger address to track read-only",
		},
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "the space separated mnemonic to derive the address from",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the display name of the account",
		},
		&cli.BoolFlag{
			Name:  "new",
			Usage: "tolerate an address unknown to the ledger",
		},
	},
	Action: addAccountAction,
}

var removeaccount = cli.Command{
	Name:   "removeaccount",
	Usage:  "stop tracking an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the address of the tracked account",
			Required: true,
		},
	},
	Action: removeAccountAction,
}

var selectaccount = cli.Command{
	Name:   "selectaccount",
	Usage:  "mark an account as the selected one",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the address of the tracked account",
			Required: true,
		},
	},
	Action: selectAccountAction,
}

var refreshaccount = cli.Command{
	Name:   "refreshaccount",
	Usage:  "re-fetch balance and recent transactions of an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the address of the tracked account",
			Required: true,
		},
	},
	Action: refreshAccountAction,
}

var send = cli.Command{
	Name:  "send",
	Usage: "sign a transfer with a mnemonic and broadcast it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mnemonic",
			Usage:    "the space separated mnemonic of the sending account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the recipient address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount in base units",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "fee",
			Usage: "the fee in base units",
			Value: 10000000,
		},
	},
	Action: sendAction,
}

func listAccountsAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	accounts, err := svc.wallet.ListAccounts(context.Background())
	if err != nil {
		return err
	}

	printJSON(accounts)
	return nil
}

func addAccountAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	address := ctx.String("address")
	mode := domain.ReadOnly
	if mnemonic := ctx.String("mnemonic"); len(mnemonic) > 0 {
		derived, err := svc.wallet.RegisterAccount(strings.Split(mnemonic, " "))
		if err != nil {
			return err
		}
		if len(address) > 0 && address != derived {
			return application.ErrMnemonicMismatch
		}
		address = derived
		mode = domain.FullAccess
	}

	account, err := svc.wallet.Login(
		context.Background(), address,
		application.LoginOpts{Name: ctx.String("name"), Mode: mode},
		ctx.Bool("new"),
	)
	if err != nil {
		return err
	}

	printJSON(account)
	return nil
}

func removeAccountAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	return svc.wallet.RemoveAccount(context.Background(), ctx.String("address"))
}

func selectAccountAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	return svc.wallet.SelectAccount(context.Background(), ctx.String("address"))
}

func refreshAccountAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	address := ctx.String("address")
	if err := svc.wallet.RefreshAccount(context.Background(), address); err != nil {
		return err
	}

	txs, err := svc.wallet.Transactions(context.Background(), address)
	if err != nil {
		return err
	}

	printJSON(txs)
	return nil
}

func sendAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	txid, err := svc.wallet.Send(context.Background(), application.SendOpts{
		Mnemonic:    strings.Split(ctx.String("mnemonic"), " "),
		RecipientID: ctx.String("to"),
		Amount:      ctx.Uint64("amount"),
		Fee:         ctx.Uint64("fee"),
	})
	if err != nil {
		return err
	}

	printJSON(map[string]string{"txid": txid})
	return nil
}

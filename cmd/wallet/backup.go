package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
)

var exportdata = cli.Command{
	Name:  "exportdata",
	Usage: "write the account set and address book to a backup file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "out",
			Usage:    "the path of the backup file to write",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "contacts",
			Usage: "include the address book",
			Value: true,
		},
	},
	Action: exportDataAction,
}

var importdata = cli.Command{
	Name:  "importdata",
	Usage: "merge a backup file into the local store",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Usage:    "the path of the backup file to read",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "override",
			Usage: "replace entries that already exist",
		},
	},
	Action: importDataAction,
}

func exportDataAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	doc, err := svc.wallet.ExportData(context.Background(), ctx.Bool("contacts"))
	if err != nil {
		return err
	}

	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(ctx.String("out"), buf, 0600); err != nil {
		return err
	}

	fmt.Printf("backup written to %s\n", ctx.String("out"))
	return nil
}

func importDataAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	buf, err := os.ReadFile(ctx.String("in"))
	if err != nil {
		return err
	}

	doc := application.BackupDocument{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return fmt.Errorf("malformed backup file: %w", err)
	}

	return svc.wallet.ImportData(context.Background(), doc, ctx.Bool("override"))
}

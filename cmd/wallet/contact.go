package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listcontacts = cli.Command{
	Name:   "listcontacts",
	Usage:  "list the whole address book ordered by name",
	Action: listContactsAction,
}

var setcontact = cli.Command{
	Name:  "setcontact",
	Usage: "add or rename an address book entry",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the ledger address of the contact",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the display name of the contact",
			Required: true,
		},
	},
	Action: setContactAction,
}

var removecontact = cli.Command{
	Name:  "removecontact",
	Usage: "delete an address book entry",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "the ledger address of the contact",
			Required: true,
		},
	},
	Action: removeContactAction,
}

var searchcontacts = cli.Command{
	Name:  "searchcontacts",
	Usage: "find address book entries by name prefix",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "prefix",
			Usage:    "the name prefix to match, case sensitive",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "the maximum number of entries returned",
		},
	},
	Action: searchContactsAction,
}

func listContactsAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	contacts, err := svc.addressBook.Contacts(context.Background())
	if err != nil {
		return err
	}

	printJSON(contacts)
	return nil
}

func setContactAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	return svc.addressBook.SetContact(
		context.Background(), ctx.String("address"), ctx.String("name"),
	)
}

func removeContactAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	return svc.addressBook.RemoveContact(context.Background(), ctx.String("address"))
}

func searchContactsAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	matches, err := svc.addressBook.Search(
		context.Background(), ctx.String("prefix"), ctx.Int("limit"),
	)
	if err != nil {
		return err
	}

	printJSON(matches)
	return nil
}

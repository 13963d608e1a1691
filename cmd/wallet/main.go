package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dpos-wallet/wallet-daemon/config"
	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	dbbadger "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/badger"
	"github.com/dpos-wallet/wallet-daemon/pkg/pricefeed"
	coinbasefeed "github.com/dpos-wallet/wallet-daemon/pkg/pricefeed/coinbase"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "wallet CLI"
	app.Usage = "Command line interface for the wallet daemon state"
	app.Commands = append(
		app.Commands,
		&listaccounts,
		&addaccount,
		&removeaccount,
		&selectaccount,
		&refreshaccount,
		&send,
		&listcontacts,
		&setcontact,
		&removecontact,
		&searchcontacts,
		&exportdata,
		&importdata,
		&setlocale,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

type services struct {
	wallet      application.WalletService
	addressBook application.AddressBookService
	close       func()
}

// getServices opens the daemon's local store, so the CLI must not run while
// the daemon holds it.
func getServices() (*services, error) {
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		return nil, fmt.Errorf("opening the daemon store: %w", err)
	}

	ledgerSvc, err := config.GetLedgerService()
	if err != nil {
		repoManager.Close()
		return nil, err
	}

	priceSvc := pricefeed.NewCachingService(
		coinbasefeed.NewService(
			config.GetString(config.PriceFeedEndpointKey),
			config.GetString(config.CoinSymbolKey),
		),
		0,
	)

	return &services{
		wallet: application.NewWalletService(
			repoManager, ledgerSvc, priceSvc,
			config.GetNetworkSuffix(), config.GetInt(config.TxPageSizeKey),
		),
		addressBook: application.NewAddressBookService(repoManager),
		close:       repoManager.Close,
	}, nil
}

func printJSON(v interface{}) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[wallet] %v\n", err)
	os.Exit(1)
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dpos-wallet/wallet-daemon/config"
	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	localeloader "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/locale"
	dbbadger "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/badger"
)

var setlocale = cli.Command{
	Name:  "setlocale",
	Usage: "switch the active locale of the wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "locale",
			Usage:    "the locale tag to switch to",
			Required: true,
		},
	},
	Action: setLocaleAction,
}

func setLocaleAction(ctx *cli.Context) error {
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		return fmt.Errorf("opening the daemon store: %w", err)
	}
	defer repoManager.Close()

	var loader application.CatalogLoader
	if dir := config.GetString(config.LocalesDirKey); len(dir) > 0 {
		loader = localeloader.NewDirLoader(dir)
	} else {
		endpoint := config.GetString(config.LocalesEndpointKey)
		if len(endpoint) <= 0 {
			endpoint = config.GetString(config.LedgerEndpointKey) + "/locales"
		}
		loader = localeloader.NewHTTPLoader(endpoint)
	}

	localeSvc := application.NewLocaleService(
		repoManager, loader, config.GetSupportedLocales(), nil,
	)
	if err := localeSvc.ChangeLanguage(context.Background(), ctx.String("locale")); err != nil {
		return err
	}
	if err := localeSvc.TranslationError(); err != nil {
		fmt.Printf("locale set, but its catalog could not be loaded: %v\n", err)
		return nil
	}

	fmt.Printf("active locale is now %s\n", localeSvc.ActiveLocale())
	return nil
}

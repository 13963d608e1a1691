package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dpos-wallet/wallet-daemon/config"
	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/internal/infrastructure/hardware"
	dbbadger "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/badger"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
	"github.com/dpos-wallet/wallet-daemon/pkg/pricefeed"
	coinbasefeed "github.com/dpos-wallet/wallet-daemon/pkg/pricefeed/coinbase"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		log.WithError(err).Panic("error while opening the database")
	}
	defer repoManager.Close()

	ledgerSvc, err := config.GetLedgerService()
	if err != nil {
		log.WithError(err).Panic("error while connecting to the ledger node")
	}

	priceSvc := pricefeed.NewCachingService(
		coinbasefeed.NewService(
			config.GetString(config.PriceFeedEndpointKey),
			config.GetString(config.CoinSymbolKey),
		),
		time.Duration(config.GetInt(config.PriceTTLKey))*time.Second,
	)

	walletSvc := application.NewWalletService(
		repoManager, ledgerSvc, priceSvc,
		config.GetNetworkSuffix(), config.GetInt(config.TxPageSizeKey),
	)

	log.Debug("starting daemon")

	if !config.GetBool(config.NoStreamKey) {
		if streamSvc, ok := ledgerSvc.(ledgerapi.StreamService); ok {
			listener := application.NewBlockchainListener(walletSvc, streamSvc)
			listener.StartObservation()
			defer listener.StopObservation()
		}
	}

	watcher := hardware.NewWatcher(hardware.Opts{
		Transport: hardware.NewBridgeTransport(
			config.GetString(config.DeviceBridgeEndpointKey),
		),
		IntervalInMilliseconds: config.GetInt(config.DevicePollIntervalKey),
	})
	watcher.Start()
	defer watcher.Stop()
	go logDeviceEvents(watcher)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}

func logDeviceEvents(watcher *hardware.Watcher) {
	for event := range watcher.GetEventChannel() {
		log.WithFields(log.Fields{
			"state":    event.State,
			"previous": event.Previous,
		}).Info("hardware device state changed")
	}
}

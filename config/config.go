package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/dpos-wallet/wallet-daemon/pkg/httputil"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi/dpos"
)

const (
	// LedgerEndpointKey is the base url of the DPoS node REST API
	LedgerEndpointKey = "LEDGER_ENDPOINT"
	// LedgerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	LedgerRequestTimeoutKey = "LEDGER_REQUEST_TIMEOUT"
	// LedgerRequestsPerSecondKey caps the request rate against the node
	LedgerRequestsPerSecondKey = "LEDGER_REQUESTS_PER_SECOND"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network to use. Either "mainnet" or "testnet"
	NetworkKey = "NETWORK"
	// TxPageSizeKey is the number of transactions fetched per account refresh
	TxPageSizeKey = "TX_PAGE_SIZE"
	// SupportedLocalesKey is the comma separated list of locale tags the daemon serves
	SupportedLocalesKey = "SUPPORTED_LOCALES"
	// LocalesDirKey is the directory holding the bundled message catalogs
	LocalesDirKey = "LOCALES_DIR"
	// LocalesEndpointKey is the remote catalog endpoint, used when LocalesDirKey is empty
	LocalesEndpointKey = "LOCALES_ENDPOINT"
	// PriceFeedEndpointKey is the base url of the fiat price feed
	PriceFeedEndpointKey = "PRICE_FEED_ENDPOINT"
	// CoinSymbolKey is the ticker of the coin on the price feed
	CoinSymbolKey = "COIN_SYMBOL"
	// PriceTTLKey is the seconds a cached spot rate stays fresh
	PriceTTLKey = "PRICE_TTL"
	// DeviceBridgeEndpointKey is the url of the local hardware signing bridge
	DeviceBridgeEndpointKey = "DEVICE_BRIDGE_ENDPOINT"
	// DevicePollIntervalKey is the interval in milliseconds between device detections
	DevicePollIntervalKey = "DEVICE_POLL_INTERVAL"
	// NoStreamKey disables the websocket block feed and leaves refreshes on demand
	NoStreamKey = "NO_STREAM"

	DbLocation = "db"

	// MainnetSuffix and TestnetSuffix are the address suffixes of the two networks
	MainnetSuffix = "R"
	TestnetSuffix = "T"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("wallet-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETD")
	vip.AutomaticEnv()

	vip.SetDefault(LedgerEndpointKey, "https://wallet.rise.vision")
	vip.SetDefault(LedgerRequestTimeoutKey, 15000)
	vip.SetDefault(LedgerRequestsPerSecondKey, 10)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(TxPageSizeKey, 25)
	vip.SetDefault(SupportedLocalesKey, "en,it,fr,de,es,pl,nl,et")
	vip.SetDefault(LocalesEndpointKey, "")
	vip.SetDefault(LocalesDirKey, "")
	vip.SetDefault(PriceFeedEndpointKey, "https://api.coinbase.com")
	vip.SetDefault(CoinSymbolKey, "RISE")
	vip.SetDefault(PriceTTLKey, 60)
	vip.SetDefault(DeviceBridgeEndpointKey, "http://localhost:9117")
	vip.SetDefault(DevicePollIntervalKey, 2000)
	vip.SetDefault(NoStreamKey, false)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetNetworkSuffix returns the address suffix of the configured network.
func GetNetworkSuffix() string {
	if GetString(NetworkKey) == "testnet" {
		return TestnetSuffix
	}
	return MainnetSuffix
}

// GetSupportedLocales returns the configured locale tags in order.
func GetSupportedLocales() []string {
	raw := GetString(SupportedLocalesKey)
	locales := make([]string, 0)
	for _, l := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(l); len(trimmed) > 0 {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

//GetLedgerService ...
func GetLedgerService() (ledgerapi.Service, error) {
	timeout := time.Duration(GetInt(LedgerRequestTimeoutKey)) * time.Millisecond
	httputil.SetTimeout(timeout)

	return dpos.NewService(dpos.Opts{
		APIURL:            GetString(LedgerEndpointKey),
		RequestsPerSecond: GetInt(LedgerRequestsPerSecondKey),
	})
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != "mainnet" && networkName != "testnet" {
		return fmt.Errorf("network must be either 'mainnet' or 'testnet'")
	}

	endpoint := GetString(LedgerEndpointKey)
	if _, err := url.Parse(endpoint); err != nil {
		return fmt.Errorf("ledger endpoint is not a valid url: %s", err)
	}

	if GetInt(TxPageSizeKey) <= 0 {
		return fmt.Errorf("tx page size must be positive")
	}

	if len(GetSupportedLocales()) <= 0 {
		return fmt.Errorf("supported locales must not be empty")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

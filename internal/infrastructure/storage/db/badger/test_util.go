package dbbadger

import (
	"context"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/thanhpk/randstr"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

var (
	ctx                = context.Background()
	dbManager          *DbManager
	accountRepository  domain.AccountRepository
	contactRepository  domain.ContactRepository
	settingsRepository domain.SettingsRepository
	testDir            string
)

func before() {
	var err error
	testDir, err = os.MkdirTemp("", "walletd-dbtest")
	if err != nil {
		panic(err)
	}

	dbManager, err = NewDbManager(testDir, nil)
	if err != nil {
		panic(err)
	}
	accountRepository = dbManager.AccountRepository()
	contactRepository = dbManager.ContactRepository()
	settingsRepository = dbManager.SettingsRepository()
}

func after() {
	dbManager.Close()
	os.RemoveAll(testDir)
}

func randomAddress() string {
	id := binary.BigEndian.Uint64(randstr.Bytes(8))
	return strconv.FormatUint(id, 10) + "R"
}

func randomName() string {
	return randstr.String(8)
}

func randomAccount() *domain.Account {
	account, _ := domain.NewAccount(randomAddress(), randstr.Hex(32), domain.FullAccess)
	account.Name = randomName()
	return account
}

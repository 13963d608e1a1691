package application

import "errors"

var (
	// ErrAccountNotExist ...
	ErrAccountNotExist = errors.New("account does not exist")
	// ErrReadOnlyAccount is returned when trying to sign with an account
	// tracked by address only.
	ErrReadOnlyAccount = errors.New("account has no signing capability")
	// ErrMnemonicMismatch is returned when the given mnemonic does not derive
	// the address of the account it is supposed to unlock.
	ErrMnemonicMismatch = errors.New("mnemonic does not match the account address")
	// ErrUnsupportedBackupVersion ...
	ErrUnsupportedBackupVersion = errors.New("backup document version is not supported")
	// ErrUnsupportedLocale ...
	ErrUnsupportedLocale = errors.New("locale is not in the supported set")
)

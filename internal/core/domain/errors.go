package domain

import "errors"

var (
	// ErrInvalidAddress is thrown when an entity is keyed by an empty or
	// malformed address
	ErrInvalidAddress = errors.New("address must not be empty")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("account with this address already exists")
	// ErrAccountNotExist ...
	ErrAccountNotExist = errors.New("account does not exist")
)

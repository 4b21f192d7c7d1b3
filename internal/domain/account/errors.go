package domain_account

import "errors"

var (
	ErrAccountNotFound = errors.New("account: not found in snapshot")
	ErrInvalidType     = errors.New("account: type must be SAVINGS or CHECKING")
)

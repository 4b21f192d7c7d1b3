package domain_beneficiary

import "errors"

var (
	ErrMissingAlias         = errors.New("beneficiary: alias is required")
	ErrInvalidAccountNumber = errors.New("beneficiary: account number must have at least 5 characters")
	ErrMissingHolderName    = errors.New("beneficiary: holder name is required")
)

package domain_customer

import "errors"

var (
	ErrGivenNames       = errors.New("customer: both given names are required")
	ErrSurnames         = errors.New("customer: both surnames are required")
	ErrPasswordMismatch = errors.New("customer: passwords do not match")
	ErrMissingPassword  = errors.New("customer: password is required")
	ErrNationalID       = errors.New("customer: national id must have 10 digits")
	ErrMissingUsername  = errors.New("customer: username is required")
	ErrMissingContact   = errors.New("customer: email, phone and address are required")
)

package impl_accountrequest

import "errors"

var ErrPendingRequest = errors.New("accountrequest: an account is already pending approval")

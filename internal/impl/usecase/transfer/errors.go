package impl_transfer

import "errors"

var (
	ErrUnknownEvent = errors.New("transfer: unknown event")
	ErrNotLoaded    = errors.New("transfer: controller has no account snapshot yet")
)

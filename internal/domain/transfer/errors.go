package domain_transfer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount        = errors.New("transfer: amount must be a number > 0")
	ErrUnvalidatedRecipient = errors.New("transfer: destination must be validated before confirming")
	ErrSameAccount          = errors.New("transfer: source equals destination")
	ErrInsufficientFunds    = errors.New("transfer: amount exceeds source balance")
	ErrRecipientNotFound    = errors.New("transfer: recipient account not found")
	ErrRecipientInactive    = errors.New("transfer: recipient account is inactive")
	ErrConfirmationTimeout  = errors.New("transfer: confirmation window elapsed")
	ErrUpstream             = errors.New("transfer: upstream failure")
	ErrCommitRejected       = errors.New("transfer: commit rejected")
	ErrSessionExpired       = errors.New("transfer: session expired")

	ErrInvalidAccountNumber   = errors.New("transfer: account number must have at least 5 characters")
	ErrNoSourceAccount        = errors.New("transfer: source must be an active account")
	ErrUnknownDestination     = errors.New("transfer: destination must be an active own account")
	ErrOwnTransferUnavailable = errors.New("transfer: own-account transfers need two active accounts")
	ErrInvalidMode            = errors.New("transfer: invalid destination mode")

	ErrInvalidStateTransition = errors.New("transfer: invalid state transition")
	ErrCommitInProgress       = errors.New("transfer: commit already in progress")
	ErrControllerClosed       = errors.New("transfer: controller closed")
)

// RejectedError is a business error reported by the backend. Message is shown
// to the user verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Is(target error) bool { return target == ErrCommitRejected }

// UpstreamError wraps a transport failure or a backend server error. Message
// holds the backend's own text when a 5xx response carried one.
type UpstreamError struct {
	Op      string
	Err     error
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("transfer: upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

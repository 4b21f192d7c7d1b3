package domain_transfer

import "errors"

const GenericFailureMessage = "An unexpected error occurred. Please try again."

// UserMessage renders err as the text shown to the user. Backend text passes
// through verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}

	switch {
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, ErrInvalidAmount):
		return "Enter a valid amount."
	case errors.Is(err, ErrUnvalidatedRecipient):
		return "Validate the destination account first."
	case errors.Is(err, ErrSameAccount):
		return "Source and destination accounts cannot be the same."
	case errors.Is(err, ErrInsufficientFunds):
		return "The amount exceeds the available balance."
	case errors.Is(err, ErrRecipientInactive):
		return "The destination account exists but is not active."
	case errors.Is(err, ErrRecipientNotFound):
		return "Account not found."
	case errors.Is(err, ErrInvalidAccountNumber):
		return "Enter at least 5 digits of the account number."
	case errors.Is(err, ErrConfirmationTimeout):
		return "The confirmation time ran out. Start the transfer again."
	case errors.Is(err, ErrNoSourceAccount):
		return "You have no active account to transfer from."
	case errors.Is(err, ErrOwnTransferUnavailable):
		return "You need at least two active accounts to transfer between your own accounts."
	case errors.Is(err, ErrUnknownDestination):
		return "Choose one of your active accounts as destination."
	case errors.Is(err, ErrCommitInProgress):
		return "The transfer is being processed."
	default:
		return GenericFailureMessage
	}
}

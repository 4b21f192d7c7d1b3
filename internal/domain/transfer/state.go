package domain_transfer

type State string

const (
	StateComposing            State = "COMPOSING"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateCommitting           State = "COMMITTING"
	StateSucceeded            State = "SUCCEEDED"
	StateFailed               State = "FAILED"
	StateExpired              State = "EXPIRED"
)

func (s State) IsFinal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateExpired
}

type Mode string

const (
	ModeOwnAccounts Mode = "OWN_ACCOUNTS"
	ModeThirdParty  Mode = "THIRD_PARTY"
)

func (m Mode) IsValid() bool {
	return m == ModeOwnAccounts || m == ModeThirdParty
}

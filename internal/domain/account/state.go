package domain_account

import "strings"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusOther    Status = "OTHER"
)

// ParseStatus normalizes a backend status string. Matching is case-insensitive
// and accepts both the backend's Spanish values and the English ones; anything
// unrecognized collapses to StatusOther, which is never eligible for transfers.
func ParseStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVA", "ACTIVO", "ACTIVE":
		return StatusActive
	case "INACTIVA", "INACTIVO", "INACTIVE":
		return StatusInactive
	default:
		return StatusOther
	}
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

type Type string

const (
	TypeSavings  Type = "SAVINGS"
	TypeChecking Type = "CHECKING"
	TypeUnknown  Type = "UNKNOWN"
)

const (
	typeCodeSavings  = 1
	typeCodeChecking = 2
)

func TypeFromCode(code int) Type {
	switch code {
	case typeCodeSavings:
		return TypeSavings
	case typeCodeChecking:
		return TypeChecking
	default:
		return TypeUnknown
	}
}

func ParseType(raw string) Type {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SAVINGS", "AHORROS", "AHORRO", "1":
		return TypeSavings
	case "CHECKING", "CORRIENTE", "2":
		return TypeChecking
	default:
		return TypeUnknown
	}
}

func (t Type) Code() int {
	switch t {
	case TypeSavings:
		return typeCodeSavings
	case TypeChecking:
		return typeCodeChecking
	default:
		return 0
	}
}

func (t Type) IsKnown() bool {
	return t == TypeSavings || t == TypeChecking
}

func (t Type) Label() string {
	switch t {
	case TypeSavings:
		return "Savings"
	case TypeChecking:
		return "Checking"
	default:
		return "Account"
	}
}

package impl_sandbox

import (
	"errors"
	"net/http"
)

var (
	ErrBadCredentials       = errors.New("Usuario o contraseña incorrectos")
	ErrUnauthorized         = errors.New("Token inválido o expirado")
	ErrAccountNotFound      = errors.New("Cuenta no encontrada")
	ErrAccountInactive      = errors.New("La cuenta destino no está activa")
	ErrSourceNotOwned       = errors.New("La cuenta origen no pertenece al usuario")
	ErrSourceInactive       = errors.New("La cuenta origen no está activa")
	ErrSameAccount          = errors.New("La cuenta origen y destino no pueden ser la misma")
	ErrInvalidAmount        = errors.New("El monto debe ser mayor a cero")
	ErrInsufficientFunds    = errors.New("Saldo insuficiente")
	ErrInvalidAccountType   = errors.New("Tipo de cuenta inválido")
	ErrPendingRequest       = errors.New("Ya tiene una solicitud de cuenta pendiente")
	ErrDuplicateBeneficiary = errors.New("Beneficiario ya registrado")
	ErrInvalidBeneficiary   = errors.New("Datos de beneficiario incompletos")
	ErrUserExists           = errors.New("El nombre de usuario ya está registrado")
	ErrNationalIDTaken      = errors.New("Ya existe un usuario con esa cédula")
	ErrInvalidRegistration  = errors.New("Datos de registro incompletos")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAccountInactive), errors.Is(err, ErrPendingRequest), errors.Is(err, ErrDuplicateBeneficiary),
		errors.Is(err, ErrUserExists), errors.Is(err, ErrNationalIDTaken):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

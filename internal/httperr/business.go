package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Validation
// ===============================

// ValidationError bloqueia o avanço do wizard; nunca toca a persistência.
type ValidationError struct {
	Code string
}

func (e ValidationError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return ValidationError{Code: code}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func ValidationCode(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// ===============================
// Persistence
// ===============================

// FatalPersistenceError: remoto e fallback falharam. Nada foi gravado.
type FatalPersistenceError struct {
	Remote   error
	Fallback error
}

func (e FatalPersistenceError) Error() string {
	return "persistence_failed"
}

func IsFatalPersistence(err error) bool {
	var fe FatalPersistenceError
	return errors.As(err, &fe)
}

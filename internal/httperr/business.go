package httperr

import "errors"

// Códigos de negócio do fluxo de agendamento.
const (
	CodeMissingField     = "missing_field"
	CodePastSlot         = "past_slot"
	CodeTimeConflict     = "time_conflict"
	CodeMissingPhone     = "missing_phone"
	CodeDuplicateRequest = "duplicate_request"
)

type BusinessError struct {
	Code  string
	Field string
}

func (e BusinessError) Error() string {
	if e.Field != "" {
		return e.Code + ":" + e.Field
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessField aponta o primeiro campo faltante de uma validação.
func ErrBusinessField(code, field string) error {
	return BusinessError{Code: code, Field: field}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessField(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Field
	}
	return ""
}

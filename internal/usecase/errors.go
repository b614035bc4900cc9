package usecase

import "errors"

// DomainError is a problem with the caller's input. Handlers answer 400.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure talking to something we depend on. Handlers
// answer 500 with the message.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func newTechnicalError(code string, err error) *TechnicalError {
	return &TechnicalError{Code: code, Message: err.Error(), Err: err}
}

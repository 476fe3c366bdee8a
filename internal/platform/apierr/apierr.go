// Package apierr define o modelo de erro compartilhado entre os serviços.
// Toda operação rejeitada devolve um *APIError; nada aqui derruba o processo.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeEligibility     Code = "ELIGIBILITY"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code     `json:"code"`
	Message string   `json:"message"`
	// Details lista os registros que bloqueiam a operação (exclusões barradas).
	Details []string `json:"details,omitempty"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError     { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError    { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrEligibility(msg string) *APIError { return &APIError{Code: CodeEligibility, Message: msg} }
func ErrInternal(msg string) *APIError    { return &APIError{Code: CodeInternal, Message: msg} }

func ErrConflict(msg string, details ...string) *APIError {
	return &APIError{Code: CodeConflict, Message: msg, Details: details}
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeEligibility:
			return http.StatusUnprocessableEntity
		case CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type ErrorBody struct {
	Error APIError `json:"error"`
}

func Body(code Code, msg string) ErrorBody {
	return ErrorBody{Error: APIError{Code: code, Message: msg}}
}

func BodyFrom(err error) ErrorBody {
	var api *APIError
	if errors.As(err, &api) {
		return ErrorBody{Error: *api}
	}
	return Body(CodeInternal, err.Error())
}

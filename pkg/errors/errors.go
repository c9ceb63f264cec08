package errors

import (
	"errors"
	"fmt"
	"net/http"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/domain/shared"
)

// ErrorCode outward error code
type ErrorCode string

const (
	// generic
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// business
	CodeMemberNotFound    ErrorCode = "MEMBER_NOT_FOUND"
	CodeDuplicateMember   ErrorCode = "DUPLICATE_MEMBER"
	CodeItemNotFound      ErrorCode = "ITEM_NOT_FOUND"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeOutOfStock        ErrorCode = "OUT_OF_STOCK"
	CodeInvalidOrderState ErrorCode = "INVALID_ORDER_STATE"
)

// AppError error as seen by API clients
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode status the API answers with for this code
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeMemberNotFound, CodeItemNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeOutOfStock, CodeDuplicateMember:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err carries code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps domain errors to AppError by sentinel, falling back to the kind.
// Anything unrecognised becomes CodeInternal with a generic message.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
	}

	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		return Wrap(err, CodeMemberNotFound, msg)
	case errors.Is(err, member.ErrDuplicateName):
		return Wrap(err, CodeDuplicateMember, msg)
	case errors.Is(err, item.ErrItemNotFound):
		return Wrap(err, CodeItemNotFound, msg)
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, msg)
	case errors.Is(err, shared.ErrOutOfStock):
		return Wrap(err, CodeOutOfStock, msg)
	case errors.Is(err, order.ErrAlreadyDelivered), errors.Is(err, order.ErrAlreadyCancelled):
		return Wrap(err, CodeInvalidOrderState, msg)
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, msg)
	case errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeConflict, msg)
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, msg)
	}
	return Wrap(err, CodeInternal, "internal server error")
}

package errors

import (
	"errors"

	"github.com/tanchung/sport-store/constant"
)

type CustomError struct {
	errType constant.ErrorType
	message string
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorWithMessage carries a human-readable message, typically the
// backend's own, instead of the taxonomy default.
func SetCustomErrorWithMessage(errorType constant.ErrorType, message string) CustomError {
	return CustomError{
		errType: errorType,
		message: message,
	}
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	if errors.As(err, &ce) {
		return ce.errType == errorType
	}
	return false
}

// IsNotFound reports whether err is the not-found error. Search callers use
// this to reclassify 404 as an empty result.
func IsNotFound(err error) bool {
	return IsType(err, constant.ErrNotFound)
}

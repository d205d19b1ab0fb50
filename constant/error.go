package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrValidation
	ErrBackend
	ErrBackendUnreachable
	ErrSessionExpired
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrValidation:         "validation failed",
	ErrBackend:            "backend rejected request",
	ErrBackendUnreachable: "cannot reach server",
	ErrSessionExpired:     "session expired, please login again",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrValidation:         http.StatusBadRequest,
	ErrBackend:            http.StatusBadGateway,
	ErrBackendUnreachable: http.StatusServiceUnavailable,
	ErrSessionExpired:     http.StatusUnauthorized,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrValidation:         "0005",
	ErrBackend:            "0006",
	ErrBackendUnreachable: "0007",
	ErrSessionExpired:     "0008",
}

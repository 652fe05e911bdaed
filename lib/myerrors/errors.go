package myerrors

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

type Kind string

const (
	KindUnknown        Kind = ""
	KindInvalidInput   Kind = "InvalidInput"
	KindMalformedEvent Kind = "MalformedEvent"
	KindUnauthorized   Kind = "Unauthorized"
	KindNotFound       Kind = "NotFound"
	KindInternal       Kind = "Internal"
	KindConfiguration  Kind = "ConfigurationError"
	KindPersistence    Kind = "PersistenceError"
	KindGateway        Kind = "GatewayError"
	KindUnavailable    Kind = "Unavailable"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
	GetKind() Kind
}

type httpError struct {
	httpCode int
	kind     Kind
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) Unwrap() error {
	return e.err
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) GetKind() Kind {
	return e.kind
}

func newError(httpCode int, kind Kind, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		kind:     kind,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	log.Printf("Returning 400: %s", err.Error())
	return newError(http.StatusBadRequest, KindInvalidInput, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

// NewMalformedEventError signals a notification body that cannot be parsed or misses mandatory fields
func NewMalformedEventError(err error) *httpError {
	return newError(http.StatusBadRequest, KindMalformedEvent, err)
}

func NewUnauthorizedError(err error) *httpError {
	return newError(http.StatusUnauthorized, KindUnauthorized, err)
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, KindNotFound, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindInternal, err)
}

func NewConfigurationError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindConfiguration, err)
}

func NewPersistenceError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindPersistence, err)
}

// NewGatewayError signals a transport failure or a non-2xx answer of the payment provider
func NewGatewayError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindGateway, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, KindUnavailable, err)
}

func GetHTTPStatus(err error) int {
	var myError httpErrorCoder
	if err != nil && errors.As(err, &myError) {
		return myError.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}

func GetKind(err error) Kind {
	var myError httpErrorCoder
	if err != nil && errors.As(err, &myError) {
		return myError.GetKind()
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// Package taskerr defines the error vocabulary shared by the services:
// every caller-visible failure carries one of a small set of kinds, and the
// message names the rule or constraint that was violated.
package taskerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotAuthenticated
	KindNotAuthorized
	KindNotFound
	KindValidation
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotAuthenticatedf(format string, args ...interface{}) error {
	return newf(KindNotAuthenticated, format, args...)
}

func NotAuthorizedf(format string, args ...interface{}) error {
	return newf(KindNotAuthorized, format, args...)
}

func NotFoundf(format string, args ...interface{}) error {
	return newf(KindNotFound, format, args...)
}

func Validationf(format string, args ...interface{}) error {
	return newf(KindValidation, format, args...)
}

func Conflictf(format string, args ...interface{}) error {
	return newf(KindConflict, format, args...)
}

func Internalf(format string, args ...interface{}) error {
	return newf(KindInternal, format, args...)
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// originate here (driver failures and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotAuthenticated(err error) bool { return is(err, KindNotAuthenticated) }
func IsNotAuthorized(err error) bool    { return is(err, KindNotAuthorized) }
func IsNotFound(err error) bool         { return is(err, KindNotFound) }
func IsValidation(err error) bool       { return is(err, KindValidation) }
func IsConflict(err error) bool         { return is(err, KindConflict) }

func is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error to the response status the handlers use.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindNotAuthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Package apperror defines the error kinds returned by services and their
// single mapping onto HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/saulo-duarte/quizlens/internal/config"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindPermissionDenied
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "Conflict"
	case KindUnauthorized:
		return "Unauthorized"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindUpstream:
		return "UpstreamError"
	default:
		return "InternalError"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a Kind plus a client-facing Detail, which is either a string
// or a field->message map.
type Error struct {
	Kind   Kind
	Detail any
	Err    error
}

func (e *Error) Error() string {
	var msg string
	switch d := e.Detail.(type) {
	case string:
		msg = d
	case map[string]string:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+d[k])
		}
		msg = strings.Join(parts, "; ")
	default:
		msg = fmt.Sprint(d)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: fields}
}

func Conflict(detail string, err error) *Error {
	return &Error{Kind: KindConflict, Detail: detail, Err: err}
}

func Unauthorized(detail string) *Error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}

func PermissionDenied(detail string) *Error {
	return &Error{Kind: KindPermissionDenied, Detail: detail}
}

func Upstream(detail string, err error) *Error {
	return &Error{Kind: KindUpstream, Detail: detail, Err: err}
}

func Internal(err error) *Error {
	detail := "internal error"
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindInternal, Detail: detail, Err: err}
}

// KindOf reports the Kind of err; untyped errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

type Body struct {
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}

func Write(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context()).WithField("path", r.URL.Path)

	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	if e.Kind == KindInternal || e.Kind == KindUpstream {
		log.WithError(err).Error("Falha ao processar requisição")
	} else {
		log.WithError(err).Warn("Requisição rejeitada")
	}

	config.JSON(w, e.Kind.Status(), Body{Message: e.Kind.String(), Detail: e.Detail})
}

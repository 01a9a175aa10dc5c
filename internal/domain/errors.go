package domain

import (
	"errors"
	"fmt"
)

// Kind 错误类别，与传输层无关
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindIntegrity
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindIntegrity:
		return "integrity"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}
func NotFound(what string) error { return &Error{Kind: KindNotFound, Msg: what + " not found"} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }

func InvalidCredentials() error {
	return &Error{Kind: KindInvalidCredentials, Msg: "Invalid credentials"}
}

func Unauthenticated(msg string, err error) error {
	return &Error{Kind: KindUnauthenticated, Msg: msg, Err: err}
}

// Integrity 本应存在的关联记录找不到
func Integrity(format string, args ...any) error {
	return &Error{Kind: KindIntegrity, Msg: fmt.Sprintf(format, args...)}
}

func Internal(msg string, err error) error { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// KindOf 取错误链上第一个 *Error 的类别，没有则为 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind 判断 err 是否属于 kind
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

func RateLimited(msg string) error { return &Error{Kind: KindRateLimited, Msg: msg} }

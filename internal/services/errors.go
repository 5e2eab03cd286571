package services

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается хранилищами, когда запись не найдена
var ErrNotFound = errors.New("record not found")

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindCollaborator Kind = "collaborator"
)

// Error ошибка сервисного слоя с видом и названием операции
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// storeError переводит ошибку хранилища в NotFound или Collaborator
func storeError(op string, err error) *Error {
	if errors.Is(err, ErrNotFound) {
		return newError(KindNotFound, op, err)
	}
	return newError(KindCollaborator, op, err)
}

// KindOf возвращает вид ошибки; для чужих ошибок это KindCollaborator
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindCollaborator
}

var (
	ErrEmptyContent          = errors.New("content is required")
	ErrInvalidID             = errors.New("invalid id")
	ErrSenderNotFound        = errors.New("sender not found")
	ErrNotOwner              = errors.New("notification belongs to another user")
	ErrSelfRequest           = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest      = errors.New("request already sent")
	ErrRequestNotPending     = errors.New("request is not pending")
	ErrNotRequestAddressee   = errors.New("request is addressed to another user")
	ErrFeedSubscriptionEnded = errors.New("change feed subscription ended")
)

// ErrorKind позволяет транспорту сообщить клиенту вид ошибки
func (e *Error) ErrorKind() string {
	return string(e.Kind)
}

package models

import (
	"errors"
	"fmt"
)

var ErrStoreClosed = errors.New("store is closed")

type ErrorNotFound struct {
	Entity string
	ID     uint
	Key    string
}

func (e *ErrorNotFound) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s '%s' not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

type ErrorConflict struct {
	Message string
}

func (e *ErrorConflict) Error() string {
	return e.Message
}

type ErrorValidation struct {
	Field   string
	Message string
}

func (e *ErrorValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewNotFound(entity string, id uint) error {
	return &ErrorNotFound{Entity: entity, ID: id}
}

func NewNotFoundKey(entity, key string) error {
	return &ErrorNotFound{Entity: entity, Key: key}
}

func NewConflict(format string, args ...any) error {
	return &ErrorConflict{Message: fmt.Sprintf(format, args...)}
}

func NewValidation(field, message string) error {
	return &ErrorValidation{Field: field, Message: message}
}

func IsNotFound(err error) bool {
	var target *ErrorNotFound
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ErrorConflict
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ErrorValidation
	return errors.As(err, &target)
}

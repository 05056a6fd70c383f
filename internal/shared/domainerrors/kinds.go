// Package domainerrors declares the error kinds shared by every registry domain package.
// Entity-specific sentinels wrap one of these kinds so callers can match either.
package domainerrors

import "errors"

var (
	ErrDuplicateEntity = errors.New("duplicate entity")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidField    = errors.New("invalid field")
)

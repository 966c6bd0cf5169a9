package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidItem    = errors.New("invalid line item")
	ErrDuplicateItem  = errors.New("duplicate line item")
	ErrInvalidCommand = errors.New("invalid cart command")
)

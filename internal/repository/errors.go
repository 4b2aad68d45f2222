package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key value violates unique constraint")
	// ErrStaleOrder means the order's status or version moved since it was read.
	ErrStaleOrder = errors.New("order was modified concurrently")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

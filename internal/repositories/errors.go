package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an update or lookup target does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique field (national ID, email, device
// ID) is already taken.
var ErrDuplicate = errors.New("duplicate record")

// IsNotFoundError reports whether err means the target entity is missing,
// regardless of which adapter produced it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err means a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey)
}

package db

import (
	"errors"
	"fmt"
)

var ErrInternal = errors.New("internal error")

var ErrNotFound = errors.New("not found")

var ErrNotInitialized = errors.New("db not initialized")

var ErrDuplicateSession = errors.New("session already stored")

// ErrInvalidRecord is returned when a record misses a key field
type ErrInvalidRecord struct {
	field string
}

func (i ErrInvalidRecord) Error() string {
	return fmt.Sprintf("an invalid record detected while putting to db, empty %s", i.field)
}

package util

import (
	"errors"

	"github.com/google/uuid"
)

var ErrBadID = errors.New("malformed identifier")

// ParseID accepts the canonical 36-character UUID form only. The nil UUID is
// rejected.
func ParseID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, ErrBadID
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrBadID
	}
	return id, nil
}

package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random identifier in the form <prefix>-<uuid>, e.g.
// session-6f1c.... Ids are unique across runs and never reused.
func NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// HasPrefix reports whether id was generated with the given prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}

package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewMessageID generates a globally-unique message id namespaced with the
// given prefix, e.g. "cb.3f1a2b4c-...". An empty prefix yields a bare UUID.
func NewMessageID(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s.%s", prefix, uuid.NewString())
}

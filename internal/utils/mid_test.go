package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageID_Namespaced(t *testing.T) {
	t.Parallel()

	mid := NewMessageID("cb")

	require.True(t, strings.HasPrefix(mid, "cb."))
	_, err := uuid.Parse(strings.TrimPrefix(mid, "cb."))
	assert.NoError(t, err)
}

func TestNewMessageID_EmptyPrefix(t *testing.T) {
	t.Parallel()

	_, err := uuid.Parse(NewMessageID(""))
	assert.NoError(t, err)

	_, err = uuid.Parse(NewMessageID("   "))
	assert.NoError(t, err)
}

func TestNewMessageID_Unique(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, NewMessageID("cb"), NewMessageID("cb"))
}

package idgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_NextIDUnique(t *testing.T) {
	n, err := NewNode(7)
	require.NoError(t, err)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := n.NextID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewNode_OutOfRange(t *testing.T) {
	_, err := NewNode(2048)
	require.Error(t, err)
}

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

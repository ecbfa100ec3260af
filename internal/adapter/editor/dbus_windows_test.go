//go:build windows

package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_DBusUnavailable(t *testing.T) {
	a, err := NewAdapter("dbus", Options{})
	require.Error(t, err)
	assert.Nil(t, a)

	var adapterErr *AdapterError
	require.True(t, errors.As(err, &adapterErr))
	assert.Equal(t, "dbus", adapterErr.Transport)
}

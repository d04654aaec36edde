package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CopiesValues(t *testing.T) {
	m := NewMemoryStore()
	in := []byte("P3")
	require.NoError(t, m.Set("postoAtivoPickTime", in))
	in[1] = '9'

	out, ok, err := m.Get("postoAtivoPickTime")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "P3", string(out))

	out[1] = '7'
	again, _, _ := m.Get("postoAtivoPickTime")
	assert.Equal(t, "P3", string(again))

	require.NoError(t, m.Delete("postoAtivoPickTime"))
	_, ok, _ = m.Get("postoAtivoPickTime")
	assert.False(t, ok)
	assert.NoError(t, m.Close())
}

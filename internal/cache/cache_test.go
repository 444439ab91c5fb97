package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Cache {
	t.Helper()
	c, err := Open("", Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_PutGet(t *testing.T) {
	c := openTest(t)
	key := Key("gemini", "gemini-2.5-flash", "prompt")

	_, err := c.Get(key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Put(key, Entry{Text: "summary", Model: "gemini-2.5-flash"}))

	got, err := c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "summary", got.Text)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, c.Delete(key))
	_, err = c.Get(key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_OnDisk(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir, Options{})
	require.NoError(t, err)
	require.NoError(t, c.Put("k", Entry{Text: "kept"}))
	require.NoError(t, c.Close())

	c, err = Open(dir, Options{})
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Text)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key("x"), 64)
}

package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

func TestStoreLookupDelete(t *testing.T) {
	keyring.MockInit()

	_, err := Lookup(config.ProviderOpenAI)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, Store(config.ProviderOpenAI, "sk-1"))
	got, err := Lookup(config.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-1", got)

	require.NoError(t, Delete(config.ProviderOpenAI))
	assert.ErrorIs(t, Delete(config.ProviderOpenAI), ErrNotFound)
}

func TestResolve(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, Store(config.ProviderGemini, "k1, k2,"))
	require.NoError(t, Store(config.ProviderOpenAI, "sk-stored"))

	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "sk-env"
	require.NoError(t, Resolve(cfg))

	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
}

func TestResolve_NothingStored(t *testing.T) {
	keyring.MockInit()
	cfg := &config.Config{}
	require.NoError(t, Resolve(cfg))
	assert.Empty(t, cfg.Gemini.APIKeys)
	assert.Empty(t, cfg.OpenAI.APIKey)
}

func TestSystemUser(t *testing.T) {
	t.Setenv("USER", "alice")
	assert.Equal(t, "alice", SystemUser())

	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	assert.Equal(t, "anon", SystemUser())
}

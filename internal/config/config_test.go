package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythoslabs/mythos/internal/deeplink"
)

func TestDefaults(t *testing.T) {
	c, err := LoadFromBytes(nil)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "mythos", c.DeepLink.Scheme)
	assert.Equal(t, deeplink.PolicyLenient, c.DeepLinkPolicy())
	assert.Equal(t, "Mythos", c.App.Name)
	assert.Equal(t, 512, c.Bus.BufferSize)
}

func TestBusDuration(t *testing.T) {
	c, err := LoadFromBytes([]byte("bus:\n  emit_timeout: 250ms\n"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, 250*time.Millisecond, c.Bus.EmitTimeout)
}

func TestLoadFromBytesExpandsEnv(t *testing.T) {
	t.Setenv("MYTHOS_TEST_POLICY", "strict")
	c, err := LoadFromBytes([]byte("deep_link:\n  policy: ${MYTHOS_TEST_POLICY}\napp:\n  url: http://localhost:1420\n"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, deeplink.PolicyStrict, c.DeepLinkPolicy())
	assert.Equal(t, "http://localhost:1420", c.App.URL)
	assert.Equal(t, "mythos", c.DeepLink.Scheme, "unset keys keep defaults")
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]string{
		"policy": "deep_link:\n  policy: sometimes\n",
		"scheme": "deep_link:\n  scheme: \"my thos\"\n",
		"size":   "app:\n  width: 0\n",
		"name":   "app:\n  name: \"\"\n",
		"buffer": "bus:\n  buffer_size: 0\n",
	}
	for name, doc := range tests {
		c, err := LoadFromBytes([]byte(doc))
		require.NoError(t, err, name)
		assert.Error(t, c.Validate(), name)
	}
}

func TestMergeFile(t *testing.T) {
	c := Default()
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	assert.NoError(t, c.MergeFile(missing, true))
	assert.Error(t, c.MergeFile(missing, false))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	require.NoError(t, c.MergeFile(path, false))
	assert.Equal(t, "debug", c.Log.Level)
	assert.NoError(t, c.ApplyLogging())

	require.NoError(t, os.WriteFile(path, []byte("app: [broken"), 0644))
	assert.Error(t, c.MergeFile(path, false))
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scrublabs/tscrub/scrub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".tscrub.yaml")
	require.NoError(t, initConfigurationFile(path))

	config, err := scrub.ParseConfigurationFile(path)
	require.NoError(t, err)
	assert.Empty(t, config.Matches)
	assert.Equal(t, "", config.ReplaceWith)
}

func TestInitConfigurationFile_DefaultPath(t *testing.T) {
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, initConfigurationFile(""))
	_, err = os.Stat(filepath.Join(tempDir, scrub.DefaultConfigPath))
	assert.NoError(t, err)
}

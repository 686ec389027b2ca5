package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemSource(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0644))

	src := NewFilesystem()

	content, err := src.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "import os\n", string(content))

	_, err = src.Read(filepath.Join(tmpDir, "missing.py"))
	assert.Error(t, err)
}

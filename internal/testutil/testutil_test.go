package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	root := WriteFiles(t, map[string]string{
		"a.paws":        "(a)",
		"nested/b.paws": "{b}",
	})

	data, err := os.ReadFile(filepath.Join(root, "nested", "b.paws"))
	require.NoError(t, err)
	assert.Equal(t, "{b}", string(data))
}

func TestCaptureLogger(t *testing.T) {
	logger, buf := NewCaptureLogger()
	logger.Debug("parsed", "path", "x.paws")
	assert.Contains(t, buf.String(), "msg=parsed path=x.paws")

	NewTestLogger(t).Info("visible with -v")
}

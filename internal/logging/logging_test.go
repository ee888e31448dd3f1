package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestInitCreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "pixeldrift.log")
	require.NoError(t, Init(Options{Level: "info", File: logFile}))

	info, err := os.Stat(filepath.Dir(logFile))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: file")
	assert.Contains(t, string(content), "chart_directory")

	for _, d := range []string{DataDirectory, ChartDirectory, ReportDirectory} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestSetupTestConfigWithRemote(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithRemote(t, tmpDir, "http://127.0.0.1:9999")

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "base_url: http://127.0.0.1:9999")
	assert.Contains(t, string(content), "driver: file")
}

func TestSetupTestConfig_configPathsAreAbsolute(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, ": /") {
			parts := strings.SplitN(trimmed, " ", 2)
			path := parts[len(parts)-1]
			assert.True(t, filepath.IsAbs(path), "path should be absolute: %s", path)
		}
	}
}

func TestWriteJournal(t *testing.T) {
	tmpDir := t.TempDir()
	SetupTestConfig(t, tmpDir)

	entries := []emotionlog.Entry{
		{Emotion: "Calm", Valence: 0.4, Arousal: -0.6, Timestamp: "2025-01-01T00:00:00.000Z"},
		{Emotion: "Excited", Valence: 0.8, Arousal: 0.8, Timestamp: "2025-01-02T00:00:00.000Z"},
	}
	WriteJournal(t, tmpDir, entries, WithCollection(t, "Work", 1))

	got := ReadJournal(t, tmpDir)
	require.Len(t, got.Entries(), 2)
	// newest first
	assert.Equal(t, "Excited", got.Entries()[0].Emotion)
	require.Len(t, got.Collections(), 1)
	assert.Equal(t, got.Collections()[0].ID, got.Entries()[1].Collection)
}

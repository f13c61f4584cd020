// Package testutil provides shared test helpers for config files and journal fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/storage"
)

// Directories created under the temp dir by SetupTestConfig.
const (
	DataDirectory   = "data"
	ChartDirectory  = "charts"
	ReportDirectory = "reports"
)

// SetupTestConfig creates a config file using the file storage driver and the
// directories it points to. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{DataDirectory, ChartDirectory, ReportDirectory} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: file
  directory: %s
journal:
  undo_depth: 10
recorder:
  optimization_level: medium
outputs:
  chart_directory: %s
  report_directory: %s
playback:
  step_delay_ms: 1
`,
		filepath.Join(tmpDir, DataDirectory),
		filepath.Join(tmpDir, ChartDirectory),
		filepath.Join(tmpDir, ReportDirectory),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithRemote creates a config file that points the CLI at a server.
func SetupTestConfigWithRemote(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("remote:\n  base_url: %s\n  max_retry_attempts: 0\n", baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// JournalOption configures the journal written by WriteJournal.
type JournalOption func(*journal.Journal)

// WithCollection adds a collection and assigns it to the entries at indexes.
func WithCollection(t *testing.T, name string, indexes ...int) JournalOption {
	return func(j *journal.Journal) {
		c, err := j.AddCollection(name)
		require.NoError(t, err)
		for _, i := range indexes {
			require.NoError(t, j.AssignCollection(i, c.ID))
		}
	}
}

// WriteJournal saves entries, newest first, into the data directory of tmpDir.
func WriteJournal(t *testing.T, tmpDir string, entries []emotionlog.Entry, opts ...JournalOption) *journal.Journal {
	t.Helper()

	j := journal.New()
	j.Import(entries)
	for _, opt := range opts {
		opt(j)
	}
	kv := storage.NewFileStore(filepath.Join(tmpDir, DataDirectory))
	require.NoError(t, j.Save(context.Background(), kv))
	return j
}

// ReadJournal loads the journal saved in the data directory of tmpDir.
func ReadJournal(t *testing.T, tmpDir string) *journal.Journal {
	t.Helper()

	j, err := journal.Load(context.Background(), storage.NewFileStore(filepath.Join(tmpDir, DataDirectory)))
	require.NoError(t, err)
	return j
}

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

var generatedAt = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleEntries() []emotionlog.Entry {
	return []emotionlog.Entry{
		{Emotion: "Excited", Valence: 0.8, Arousal: 0.8, Timestamp: "2025-02-03T00:00:00.000Z", Notes: "shipped it"},
		{Emotion: "Content", Valence: 0.1, Arousal: 0.2, Timestamp: "2025-02-02T00:00:00.000Z"},
		{Emotion: "Sad", Valence: -0.6, Arousal: -0.4, Timestamp: "2025-01-20T00:00:00.000Z"},
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		entries     []emotionlog.Entry
		wantTrend   bool
		wantPeriods []string
	}{
		{
			name:        "enough history",
			entries:     sampleEntries(),
			wantTrend:   true,
			wantPeriods: []string{"2025-01", "2025-02"},
		},
		{
			name:        "single entry has no trend",
			entries:     sampleEntries()[:1],
			wantPeriods: []string{"2025-02"},
		},
		{
			name:    "empty log",
			entries: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.entries, "", generatedAt)
			require.NoError(t, err)
			assert.Equal(t, len(tt.entries), got.Summary.Total)
			assert.Equal(t, tt.wantTrend, got.Trend != nil)

			var periods []string
			for _, p := range got.Periods {
				periods = append(periods, p.Period)
			}
			assert.ElementsMatch(t, tt.wantPeriods, periods)
		})
	}
}

func TestWriter_WriteMarkdown(t *testing.T) {
	data, err := Build(sampleEntries(), "the last 30 days", generatedAt)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter("").WriteMarkdown(&buf, data))
	out := buf.String()

	assert.Contains(t, out, "# Emotion Report")
	assert.Contains(t, out, "Generated 2025-03-01 09:30 UTC for the last 30 days.")
	assert.Contains(t, out, "- Entries: 3")
	assert.Contains(t, out, "- Average valence: +0.10")
	assert.Contains(t, out, "| Positive Active | 2 | Excited, Content |")
	assert.Contains(t, out, "## Trend")
	assert.Contains(t, out, "## By month")
	assert.Contains(t, out, "- 2025-02-03T00:00:00.000Z Excited: shipped it")
}

func TestWriter_CustomTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "mine.md.go.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Summary.Total }} entries`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, NewWriter(templatePath).WriteMarkdown(&buf, Data{}))
	assert.Equal(t, "0 entries", buf.String())
}

func TestWriter_Save(t *testing.T) {
	data, err := Build(sampleEntries(), "", generatedAt)
	require.NoError(t, err)

	tests := []struct {
		format     Format
		wantPrefix string
		wantErr    bool
	}{
		{format: FormatMarkdown, wantPrefix: "# Emotion Report"},
		{format: FormatPDF, wantPrefix: "%PDF"},
		{format: "docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "reports")
			path, err := NewWriter("").Save(dir, data, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "emotion-report-2025-03-01."+string(tt.format)), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrefix, string(content[:len(tt.wantPrefix)]))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "md", want: FormatMarkdown},
		{input: "Markdown", want: FormatMarkdown},
		{input: " pdf ", want: FormatPDF},
		{input: "docx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package exchange

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

func sampleEntries() []emotionlog.Entry {
	return []emotionlog.Entry{
		{
			Emotion:      "Happy",
			Emoji:        "😄",
			Valence:      0.5,
			Arousal:      0.25,
			StartEmotion: "Sad",
			StartValence: emotionlog.Float(-0.5),
			StartArousal: emotionlog.Float(-0.75),
			Timestamp:    "2025-01-01T00:00:00.000Z",
			Path:         []affect.Position{{X: 0.25, Y: 0.875}, {X: 0.5, Y: 0.5}, {X: 0.75, Y: 0.375}},
			Notes:        `said "hi", then left`,
			Collection:   "c1",
			Tags:         []string{"a", "b"},
		},
		{
			Emotion:   "Calm",
			Valence:   0.4,
			Arousal:   -0.6,
			Timestamp: "2025-01-02T00:00:00.000Z",
		},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, sampleEntries()))

	want := strings.Join([]string{
		"timestamp,emotion,valence,arousal,startEmotion,startValence,startArousal,notes,collection,tags,pathPoints",
		`2025-01-01T00:00:00.000Z,Happy,0.5,0.25,Sad,-0.5,-0.75,"said ""hi"", then left",c1,"a,b",3`,
		"2025-01-02T00:00:00.000Z,Calm,0.4,-0.6,,,,,,,0",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, sampleEntries()[1:]))

	want := `[
  {
    "emotion": "Calm",
    "valence": 0.4,
    "arousal": -0.6,
    "timestamp": "2025-01-02T00:00:00.000Z"
  }
]
`
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, ExportJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportThenImport(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, sampleEntries(), f))

			got, err := ParseImport(buf.Bytes(), f)
			require.NoError(t, err)
			assert.Equal(t, sampleEntries(), got)
		})
	}
}

func TestParseImport(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantLen int
		wantErr bool
	}{
		{
			name:    "json array",
			data:    `[{"emotion":"Calm","valence":0.4,"arousal":-0.6,"timestamp":"2025-01-02T00:00:00.000Z"}]`,
			format:  FormatJSON,
			wantLen: 1,
		},
		{
			name:    "empty json array",
			data:    ` [] `,
			format:  FormatJSON,
			wantLen: 0,
		},
		{
			name:    "json object instead of array",
			data:    `{"emotion":"Calm"}`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "malformed json",
			data:    `[{"emotion":`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "entry without timestamp",
			data:    `[{"emotion":"Calm"}]`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "yaml list",
			data:    "- emotion: Calm\n  valence: 0.4\n  arousal: -0.6\n  timestamp: 2025-01-02T00:00:00.000Z\n",
			format:  FormatYAML,
			wantLen: 1,
		},
		{
			name:    "csv is export only",
			data:    "timestamp,emotion\n",
			format:  FormatCSV,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImport([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImport)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestFormat_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "CSV", want: FormatCSV},
		{in: ".yml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Format
			err := f.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "emotion-log-2025-03-01.csv", FileName(FormatCSV, now))
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
}

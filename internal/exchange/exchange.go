// Package exchange writes the emotion log to files and reads it back.
package exchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

var ErrInvalidImport = errors.New("invalid import")

// Format is an export file format. It implements pflag.Value.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatJSON, FormatCSV, FormatYAML}

func (f *Format) Set(v string) error {
	parsed, err := ParseFormat(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Format) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func (f *Format) Type() string {
	return "format"
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), ".")) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format %q, valid values are %q, %q or %q", v, FormatJSON, FormatCSV, FormatYAML)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// FileName is the default export file name for the day of now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("emotion-log-%s.%s", now.Format(time.DateOnly), f)
}

// Export writes entries to w.
func Export(w io.Writer, entries []emotionlog.Entry, f Format) error {
	switch f {
	case FormatJSON:
		return ExportJSON(w, entries)
	case FormatCSV:
		return ExportCSV(w, entries)
	case FormatYAML:
		return ExportYAML(w, entries)
	}
	return fmt.Errorf("export: unsupported format %q", f)
}

// ExportJSON writes a pretty-printed JSON array with two-space indentation.
func ExportJSON(w io.Writer, entries []emotionlog.Entry) error {
	if entries == nil {
		entries = []emotionlog.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("json.Encode() > %w", err)
	}
	return nil
}

func ExportYAML(w io.Writer, entries []emotionlog.Entry) error {
	if entries == nil {
		entries = []emotionlog.Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("yaml.Encode() > %w", err)
	}
	return enc.Close()
}

// CSVHeader is the fixed column order of CSV exports.
var CSVHeader = []string{
	"timestamp",
	"emotion",
	"valence",
	"arousal",
	"startEmotion",
	"startValence",
	"startArousal",
	"notes",
	"collection",
	"tags",
	"pathPoints",
}

// ExportCSV writes a header row and one row per entry. Tags are joined with
// commas and the path is reduced to its point count.
func ExportCSV(w io.Writer, entries []emotionlog.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv.Write() > %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(csvRecord(e)); err != nil {
			return fmt.Errorf("csv.Write() > %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(e emotionlog.Entry) []string {
	return []string{
		e.Timestamp,
		e.Emotion,
		formatFloat(e.Valence),
		formatFloat(e.Arousal),
		e.StartEmotion,
		formatOptional(e.StartValence),
		formatOptional(e.StartArousal),
		e.Notes,
		e.Collection,
		strings.Join(e.Tags, ","),
		strconv.Itoa(len(e.Path)),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// ParseImport decodes an array of entries. Every entry needs an emotion and
// a timestamp; anything else is left to the caller to validate.
func ParseImport(data []byte, f Format) ([]emotionlog.Entry, error) {
	var entries []emotionlog.Entry
	switch f {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: expected a JSON array of entries", ErrInvalidImport)
		}
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s files cannot be imported", ErrInvalidImport, f)
	}

	for i, e := range entries {
		if e.Timestamp == "" || e.Emotion == "" {
			return nil, fmt.Errorf("%w: entry %d has no emotion or timestamp", ErrInvalidImport, i)
		}
	}
	return entries, nil
}

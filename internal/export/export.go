package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"studysheet/internal/model"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format: %s (expected json|csv|xlsx|md)", s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// DefaultFileName is the download name used when no path is given.
func DefaultFileName(f Format) string {
	return "question-sheet." + string(f)
}

// Write renders topics in format f.
func Write(w io.Writer, topics []model.Topic, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, topics)
	case FormatCSV:
		return WriteCSV(w, topics)
	case FormatXLSX:
		return WriteXLSX(w, topics)
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(topics))
		return err
	default:
		return fmt.Errorf("unknown export format: %s", f)
	}
}

type WriteOptions struct {
	Format    Format
	Overwrite bool
}

type WriteResult struct {
	Written string `json:"written"`
	Format  Format `json:"format"`
	Bytes   int    `json:"bytes"`
}

func WriteFile(path string, topics []model.Topic, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing output path")
	}
	path = filepath.Clean(path)

	var buf bytes.Buffer
	if err := Write(&buf, topics, opt.Format); err != nil {
		return WriteResult{}, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WriteResult{}, err
		}
	}
	if err := writeFile(path, buf.Bytes(), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: path, Format: opt.Format, Bytes: buf.Len()}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

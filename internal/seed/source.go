package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source yields a seed document. Fetch must honor ctx cancellation.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
}

// HTTPSource reads the seed from the sheet endpoint (GET, JSON).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch seed: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(b)
}

// FileSource reads a JSON or YAML seed file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return ParseYAML(b)
	case ".json":
		return Parse(b)
	default:
		return ParseAny(b)
	}
}

// StaticSource returns a fixed document.
type StaticSource struct {
	Doc *Document
	Err error
}

func (s StaticSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Doc, s.Err
}

// For picks a Source from a location string: http(s) URLs become HTTPSource, anything else
// is a file path. Empty yields nil.
func For(loc string) Source {
	loc = strings.TrimSpace(loc)
	switch {
	case loc == "":
		return nil
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return HTTPSource{URL: loc}
	default:
		return FileSource{Path: loc}
	}
}

package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Document is the seed shape served by the sheet endpoint and read from seed files.
type Document struct {
	Topics []TopicSeed `json:"topics" yaml:"topics"`
	// Total is the raw question count reported by the endpoint. Informational only.
	Total int `json:"total,omitempty" yaml:"total,omitempty"`
}

type TopicSeed struct {
	Title     string         `json:"title" yaml:"title"`
	Color     string         `json:"color,omitempty" yaml:"color,omitempty"`
	SubTopics []SubTopicSeed `json:"subTopics" yaml:"subTopics"`
}

type SubTopicSeed struct {
	Title     string         `json:"title" yaml:"title"`
	Questions []QuestionSeed `json:"questions" yaml:"questions"`
}

type QuestionSeed struct {
	Title      string `json:"title" yaml:"title"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Link       string `json:"link,omitempty" yaml:"link,omitempty"`
	Resource   string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Platform   string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// ParseError reports a seed document that failed decoding or schema validation.
type ParseError struct {
	Problems []string
}

func (e *ParseError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid seed document: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid seed document: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

//go:embed seed.schema.json
var schemaJSON []byte

// Schema returns the embedded seed document JSON schema.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks raw JSON against the seed schema.
func Validate(b []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return &ParseError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &ParseError{Problems: problems}
}

// Parse validates and decodes a JSON seed document.
func Parse(b []byte) (*Document, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &ParseError{Problems: []string{err.Error()}}
	}
	return &doc, nil
}

// ParseYAML converts a YAML seed document to JSON and parses it like Parse.
func ParseYAML(b []byte) (*Document, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, &ParseError{Problems: []string{err.Error()}}
	}
	jb, err := json.Marshal(v)
	if err != nil {
		return nil, &ParseError{Problems: []string{err.Error()}}
	}
	return Parse(jb)
}

// ParseAny sniffs JSON vs YAML by the first non-space byte.
func ParseAny(b []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return Parse(trimmed)
	}
	return ParseYAML(b)
}

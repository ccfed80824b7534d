// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     report
// Description: Renders parsed packages and parse failures as styled text,
//              JSON or YAML
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

// Package report renders parse results for the command line. Text output
// is styled with lipgloss; JSON and YAML output is meant for tooling and
// carries the schema version and the run ID of the producing loader.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/msto63/rspm/pkg/core/version"
)

// Format selects the output encoding
type Format string

// Output formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// Options configures a Reporter
type Options struct {
	Format Format
	Color  string // auto, always or never
	RunID  string
}

// Reporter writes reports to one output
type Reporter struct {
	w      io.Writer
	format Format
	runID  string
	styles Styles
}

// New creates a reporter writing to w
func New(w io.Writer, opts Options) (*Reporter, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	color, err := ParseColorMode(opts.Color)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		w:      w,
		format: format,
		runID:  opts.RunID,
		styles: NewStyles(w, color),
	}, nil
}

// header is embedded in every machine readable document
type header struct {
	Schema string `json:"schema" yaml:"schema"`
	Tool   string `json:"tool" yaml:"tool"`
	RunID  string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

func (r *Reporter) header() header {
	return header{
		Schema: version.Schema,
		Tool:   version.Tool,
		RunID:  r.runID,
	}
}

// encode writes v as JSON or YAML
func (r *Reporter) encode(v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s is not a document format", r.format)
	}
}

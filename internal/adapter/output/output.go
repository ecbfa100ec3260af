// Package output provides output formatters for pipecue diagnostics.
package output

import (
	"io"
	"time"
)

// Report describes what serve would use on this machine.
type Report struct {
	OS          string        `json:"os" yaml:"os"`
	Family      string        `json:"family" yaml:"family"`
	Player      string        `json:"player,omitempty" yaml:"player,omitempty"`
	PlayerPath  string        `json:"player_path,omitempty" yaml:"player_path,omitempty"`
	PlayerError string        `json:"player_error,omitempty" yaml:"player_error,omitempty"`
	Invocation  string        `json:"invocation,omitempty" yaml:"invocation,omitempty"`
	AssetDir    string        `json:"asset_dir" yaml:"asset_dir"`
	Assets      []AssetReport `json:"assets" yaml:"assets"`
}

// AssetReport describes one cue's sound file.
type AssetReport struct {
	Cue      string        `json:"cue" yaml:"cue"`
	Path     string        `json:"path" yaml:"path"`
	Size     int64         `json:"size,omitempty" yaml:"size,omitempty"`
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether serve could play every cue.
func (r *Report) OK() bool {
	if r.PlayerError != "" {
		return false
	}
	for _, a := range r.Assets {
		if a.Error != "" {
			return false
		}
	}
	return true
}

// Formatter formats a report for output.
type Formatter interface {
	// Format writes the formatted report to the writer.
	Format(w io.Writer, r *Report) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatText:
		fallthrough
	default:
		f, err := NewTextFormatter(opts)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom template for text format
	Compact  bool   // Single-line JSON
}

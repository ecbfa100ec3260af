package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// TextFormatter formats reports for a terminal.
type TextFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewTextFormatter creates a new text formatter. A custom template that
// does not parse is an error.
func NewTextFormatter(opts FormatterOptions) (*TextFormatter, error) {
	f := &TextFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("text").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes the report as aligned text.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	if f.template != nil {
		return f.template.Execute(w, r)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "os:         %s (%s)\n", r.OS, r.Family)
	if r.PlayerError != "" {
		fmt.Fprintf(&sb, "player:     none (%s)\n", r.PlayerError)
	} else {
		fmt.Fprintf(&sb, "player:     %s (%s)\n", r.Player, r.PlayerPath)
		fmt.Fprintf(&sb, "invocation: %s\n", r.Invocation)
	}
	fmt.Fprintf(&sb, "assets:     %s\n", r.AssetDir)

	for _, a := range r.Assets {
		if a.Error != "" {
			fmt.Fprintf(&sb, "  %-6s %s: %s\n", a.Cue, a.Path, a.Error)
			continue
		}
		fmt.Fprintf(&sb, "  %-6s %s (%s, %s)\n", a.Cue, a.Path, size(a.Size), duration(a.Duration))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"bytes":    size,
		"duration": duration,
	}
}

func size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func duration(d time.Duration) string {
	if d <= 0 {
		return "unknown length"
	}
	return d.Round(10 * time.Millisecond).String()
}

// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/bethropolis/dir-tree/internal/tree"
	"github.com/fatih/color"
)

// Printer writes rendered tree lines to the configured output destination
type Printer struct {
	output         io.Writer
	count          atomic.Int64
	useColors      bool
	jsonOutput     bool
	jsonStarted    bool
	markdownOutput bool
	fenceOpen      bool
	err            error

	dirColor  *color.Color
	diagColor *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	p := &Printer{
		output:    os.Stdout,
		dirColor:  color.New(color.FgBlue, color.Bold),
		diagColor: color.New(color.FgRed),
	}
	return p.WithColors(true)
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	for _, c := range []*color.Color{p.dirColor, p.diagColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// JSONLine represents a line in JSON output
type JSONLine struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
	IsDir bool   `json:"is_dir"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
}

// PrintRoot outputs the line naming the rendered directory.
func (p *Printer) PrintRoot(root string) {
	if p.jsonOutput {
		p.writeJSON(JSONLine{Path: ".", Name: root, Depth: -1, IsDir: true, Kind: "root", Text: root})
		return
	}
	p.openFence()
	if p.useColors && !p.markdownOutput {
		root = p.dirColor.Sprint(root)
	}
	p.printf("%s\n", root)
}

// PrintLine outputs one rendered tree line. It matches tree.LineFunc.
func (p *Printer) PrintLine(line tree.Line) {
	if line.Kind == tree.LineEntry {
		p.count.Add(1)
	}

	if p.jsonOutput {
		p.writeJSON(JSONLine{
			Path:  line.Path,
			Name:  line.Name,
			Depth: line.Depth,
			IsDir: line.IsDir,
			Kind:  line.Kind.String(),
			Text:  line.Text(),
		})
		return
	}

	p.openFence()
	if !p.useColors || p.markdownOutput {
		p.printf("%s\n", line.Text())
		return
	}
	switch {
	case line.Kind == tree.LineDiagnostic:
		p.printf("%s%s\n", line.Prefix, p.diagColor.Sprint(line.Message))
	case line.IsDir:
		p.printf("%s%s%s\n", line.Prefix, line.Connector, p.dirColor.Sprint(line.Name))
	default:
		p.printf("%s\n", line.Text())
	}
}

// Finalize completes any pending operations (closing the JSON array or the
// Markdown fence) and reports the first write error.
func (p *Printer) Finalize() error {
	if p.jsonOutput && p.jsonStarted {
		p.printf("\n]\n")
		p.jsonStarted = false
	}
	if p.fenceOpen {
		p.printf("```\n")
		p.fenceOpen = false
	}
	return p.err
}

// GetCount returns the number of entry lines printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}

func (p *Printer) openFence() {
	if p.markdownOutput && !p.fenceOpen {
		p.printf("```text\n")
		p.fenceOpen = true
	}
}

func (p *Printer) writeJSON(entry JSONLine) {
	if !p.jsonStarted {
		p.printf("[\n")
		p.jsonStarted = true
	} else {
		p.printf(",\n")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		p.setErr(fmt.Errorf("printer: marshaling JSON: %w", err))
		return
	}
	p.printf("  %s", data)
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.output, format, args...); err != nil {
		p.setErr(fmt.Errorf("printer: write failed: %w", err))
	}
}

func (p *Printer) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

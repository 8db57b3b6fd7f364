package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/treescope/internal/analyzer"
)

// resultPrinter renders analysis results as text or buffers them for a
// single JSON array.
type resultPrinter struct {
	w        io.Writer
	json     bool
	buffered []*analyzer.AnalysisResult
}

func newResultPrinter(w io.Writer, asJSON bool) *resultPrinter {
	return &resultPrinter{w: w, json: asJSON}
}

func (p *resultPrinter) Print(result *analyzer.AnalysisResult) error {
	if p.json {
		p.buffered = append(p.buffered, result)
		return nil
	}
	return p.printText(result)
}

// Flush writes buffered JSON output. Text mode flushes per result.
func (p *resultPrinter) Flush() error {
	if !p.json {
		return nil
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if len(p.buffered) == 1 {
		return enc.Encode(p.buffered[0])
	}
	return enc.Encode(p.buffered)
}

func (p *resultPrinter) printText(result *analyzer.AnalysisResult) error {
	cached := ""
	if result.File.FromCache {
		cached = " (cached)"
	}
	if _, err := fmt.Fprintf(p.w, "%s [%s, %s, %d lines]%s\n",
		result.File.Path, result.Language.ID, result.File.Encoding, result.File.Lines, cached); err != nil {
		return err
	}

	for _, el := range result.Elements {
		var extras []string
		if el.Visibility != "" {
			extras = append(extras, el.Visibility)
		}
		if el.Complexity > 0 {
			extras = append(extras, fmt.Sprintf("complexity %d", el.Complexity))
		}
		suffix := ""
		if len(extras) > 0 {
			suffix = " (" + strings.Join(extras, ", ") + ")"
		}
		fmt.Fprintf(p.w, "  %-10s %-30s L%d-%d%s\n", el.Kind, el.Name, el.StartLine, el.EndLine, suffix)
	}

	for _, qr := range result.QueryResults {
		name := ""
		if qr.Element != nil {
			name = qr.Element.Name
		}
		fmt.Fprintf(p.w, "  query %q → %s %s\n", qr.Query, qr.Capture, name)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(p.w, "  ! %s: %s\n", d.Severity, d.Message)
	}
	fmt.Fprintln(p.w)
	return nil
}

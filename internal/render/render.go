// Package render formats gptcli output for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/pbrown/gptcli/internal/models"
)

// Format selects how a transcript is exported.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Printer writes replies and status lines. Styling is only emitted when the
// writer is a color-capable terminal.
type Printer struct {
	w      io.Writer
	label  lipgloss.Style
	status lipgloss.Style
}

// NewPrinter creates a Printer for w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		status: r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Reply prints the assistant's message. Only the content is printed so the
// output can be piped; multi-line content is written untouched.
func (p *Printer) Reply(turn models.Turn) {
	fmt.Fprintln(p.w, turn.Content)
}

// Status prints a one-line confirmation.
func (p *Printer) Status(msg string) {
	fmt.Fprintln(p.w, p.status.Render(msg))
}

// Models prints one model id per line, marking the selected one.
func (p *Printer) Models(ids []string, selected string) {
	for _, id := range ids {
		if id == selected {
			fmt.Fprintf(p.w, "%s %s\n", p.label.Render("*"), id)
			continue
		}
		fmt.Fprintf(p.w, "  %s\n", id)
	}
}

// Transcript writes the turns in the given format. Text output is one
// "role: content" block per turn.
func (p *Printer) Transcript(turns []models.Turn, format Format) error {
	if turns == nil {
		turns = []models.Turn{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(turns)

	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(toYAML(turns)); err != nil {
			return err
		}
		return enc.Close()

	default:
		for _, t := range turns {
			fmt.Fprintf(p.w, "%s %s\n", p.label.Render(string(t.Role)+":"), t.Content)
		}
		return nil
	}
}

// yamlTurn carries yaml tags so exported keys match the stored JSON names.
type yamlTurn struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

func toYAML(turns []models.Turn) []yamlTurn {
	out := make([]yamlTurn, 0, len(turns))
	for _, t := range turns {
		out = append(out, yamlTurn{Role: string(t.Role), Content: t.Content})
	}
	return out
}

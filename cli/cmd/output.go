package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
)

// Output selects how command results are written.
type Output int

const (
	// OutputText is plain text meant for shells and humans.
	OutputText Output = iota
	// OutputYAML is a YAML document.
	OutputYAML
	// OutputJSON is a single JSON value.
	OutputJSON
)

// Outputs lists the accepted output format names.
var Outputs = []string{"text", "yaml", "json"}

// String returns the name of the output format.
func (o Output) String() string {
	if int(o) < len(Outputs) {
		return Outputs[o]
	}

	return "unknown"
}

// ParseOutput parses an output format name.
func ParseOutput(s string) (Output, error) {
	for i, name := range Outputs {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Output(i), nil
		}
	}

	return OutputText, ErrOutputFormat.With(slog.String("output", s))
}

const outputIndent = 2

var (
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	formatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
)

// encode writes v as YAML or JSON. Text output is produced by each command.
func (o Output) encode(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)

	switch o {
	case OutputJSON:
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", outputIndent))
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		data = append(data, '\n')

	case OutputYAML:
		data, err = yaml.MarshalWithOptions(v, yaml.Indent(outputIndent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		return ErrOutputFormat.With(slog.String("output", o.String()))
	}

	_, err = w.Write(data)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// writeLines writes each line followed by a newline.
func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		_, err := io.WriteString(w, line+"\n")
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

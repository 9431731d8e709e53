// Package console provides terminal interaction primitives: a yes/no
// prompt reading from an input stream, and a plain-text table renderer.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
)

// StdinPrompter asks yes/no questions on a terminal. An empty answer
// selects the default; anything starting with 'y' or 'Y' is yes, anything
// else is no.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinPrompter creates a Prompter reading answers from in and writing
// questions to out.
func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm implements port.Prompter.
func (p *StdinPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes, nil
	}
	return strings.HasPrefix(answer, "y"), nil
}

var _ port.Prompter = (*StdinPrompter)(nil)

// TabTableRenderer renders tables with aligned columns using text/tabwriter.
type TabTableRenderer struct{}

// NewTabTableRenderer creates a new TabTableRenderer.
func NewTabTableRenderer() *TabTableRenderer {
	return &TabTableRenderer{}
}

// RenderTable implements port.TableRenderer. It writes a header row, a
// separator, and one line per row, columns separated by two spaces.
func (r *TabTableRenderer) RenderTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	separators := make([]string, len(headers))
	for i, h := range headers {
		separators[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

var _ port.TableRenderer = (*TabTableRenderer)(nil)

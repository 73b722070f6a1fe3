// Package output formats conversion results and listings for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/jparise/unitconv/internal/history"
	"github.com/jparise/unitconv/internal/units"
	"github.com/mgutz/ansi"
)

// Output handles all output formatting with optional color support.
type Output struct {
	mu       sync.Mutex
	stdout   io.Writer
	stderr   io.Writer
	isTTY    bool
	maxWidth int

	cyan   func(string) string
	green  func(string) string
	gray   func(string) string
	yellow func(string) string
	red    func(string) string
}

// New creates a new Output. isTTY and maxWidth control table layout.
func New(stdout, stderr io.Writer, colorize, isTTY bool, maxWidth int) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:   stdout,
		stderr:   stderr,
		isTTY:    isTTY,
		maxWidth: maxWidth,
		cyan:     color("cyan"),
		green:    color("green+b"),
		gray:     color("black+h"),
		yellow:   color("yellow"),
		red:      color("red+b"),
	}
}

// Result writes a conversion message.
func (o *Output) Result(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.stdout, o.green(message))
}

// Successf writes a formatted confirmation for a data change.
func (o *Output) Successf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Errorf writes a formatted error message to stderr.
func (o *Output) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.red("Error: ")+format+"\n", args...)
}

// Groups writes a table of groups and their base units.
func (o *Output) Groups(t *units.Tables) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tp := tableprinter.New(o.stdout, o.isTTY, o.maxWidth)
	tp.AddHeader([]string{"GROUP", "BASE", "UNITS"})
	for _, g := range t.Groups() {
		tp.AddField(g, tableprinter.WithColor(o.cyan))
		tp.AddField(t.BaseUnits[g])
		tp.AddField(fmt.Sprint(len(t.Units[g])))
		tp.EndRow()
	}
	return tp.Render()
}

// Types writes a table of the units in a group.
func (o *Output) Types(types []units.TypeInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tp := tableprinter.New(o.stdout, o.isTTY, o.maxWidth)
	tp.AddHeader([]string{"UNIT", "FACTOR", "OFFSET", "ALIASES"})
	for _, ti := range types {
		name := ti.Name
		if ti.Base {
			name += " (base)"
		}
		tp.AddField(name, tableprinter.WithColor(o.cyan))
		tp.AddField(fmt.Sprintf("%g", ti.Unit.Factor))
		tp.AddField(fmt.Sprintf("%g", ti.Unit.Offset))
		tp.AddField(strings.Join(ti.Aliases, ", "), tableprinter.WithColor(o.gray))
		tp.EndRow()
	}
	return tp.Render()
}

// History writes a table of history entries.
func (o *Output) History(entries []history.Entry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tp := tableprinter.New(o.stdout, o.isTTY, o.maxWidth)
	tp.AddHeader([]string{"DATE", "CONVERSION"})
	for _, e := range entries {
		tp.AddField(e.Date.Local().Format("2006-01-02 15:04:05"), tableprinter.WithColor(o.gray))
		tp.AddField(e.String())
		tp.EndRow()
	}
	return tp.Render()
}

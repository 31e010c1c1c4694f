package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// UI writes the user facing plan and progress lines.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	warningPrefix = color.New(color.FgHiYellow).Sprint("warning:")
	errorPrefix   = color.New(color.FgHiRed).Sprint("Command failed:")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
)

// Cyan returns a cyan-colored string.
func Cyan(s string) string { return cyan(s) }

// Println writes one plain line to Out.
func (u *UI) Println(a ...any) {
	fmt.Fprintln(u.Out, a...)
}

// Printf writes formatted text to Out.
func (u *UI) Printf(format string, a ...any) {
	fmt.Fprintf(u.Out, format, a...)
}

// Warning reports a non-fatal problem on ErrOut.
func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

// Failure reports a terminal error on ErrOut.
func (u *UI) Failure(err error) {
	fmt.Fprintf(u.ErrOut, "\n%s %v\n", errorPrefix, err)
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

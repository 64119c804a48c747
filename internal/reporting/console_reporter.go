package reporting

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"composectl/internal/color"
)

// ConsoleReporter renders updates as prefixed, colored lines and status
// reports as a plain table. It is the only presentation layer shipped
// with the tool.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter creates a ConsoleReporter writing to out. Command
// updates are printed only when verbose is set.
func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, verbose: verbose}
}

// Report renders a single update.
func (c *ConsoleReporter) Report(update Update) {
	switch update.Level {
	case LevelSuccess:
		fmt.Fprintf(c.out, "%s %s\n", color.Success.Render("[✓]"), color.Success.Render(update.Message))
	case LevelWarn:
		fmt.Fprintf(c.out, "%s %s\n", color.Warning.Render("[!]"), color.Warning.Render(update.Message))
	case LevelError:
		fmt.Fprintf(c.out, "%s %s\n", color.Error.Render("[✗]"), color.Error.Render(update.Message))
	case LevelCommand:
		if c.verbose {
			fmt.Fprintf(c.out, "%s %s\n", color.Command.Render("[>]"), color.Muted.Render(update.Message))
		}
	default:
		fmt.Fprintf(c.out, "%s %s\n", color.Info.Render("[i]"), update.Message)
	}
}

// Table renders one status row per configured service.
func (c *ConsoleReporter) Table(rows []StatusRow) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"SERVICE", "STATUS", "CONTAINER ID", "IMAGE"})

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range rows {
		table.Append([]string{row.Service, c.renderState(row.State), row.ContainerID, row.Image})
	}

	table.Render()
}

func (c *ConsoleReporter) renderState(state ServiceState) string {
	switch state {
	case StateRunning:
		return color.Success.Render(string(state))
	case StateStopped:
		return color.Warning.Render(string(state))
	default:
		return color.Error.Render(string(state))
	}
}

// Package formatting renders stack events and command results for the
// terminal. Formatting here is presentation only; the ordering and
// content of the underlying events come from the reconciler.
package formatting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stackctl/internal/controlplane"
	"stackctl/internal/reconciler"
)

// actionVerbs maps an operation action to the verb used in event lines.
var actionVerbs = map[reconciler.Action]string{
	reconciler.ActionCreate: "Creating",
	reconciler.ActionUpdate: "Updating",
	reconciler.ActionDelete: "Deleting",
}

// EventLine renders one stack event as a single human-readable line.
func EventLine(op reconciler.Operation, ev controlplane.Event) string {
	verb, ok := actionVerbs[op.Action]
	if !ok {
		verb = string(op.Action)
	}

	line := fmt.Sprintf("%s  %s %s: %s  %s  %s",
		ev.Timestamp.Local().Format(time.TimeOnly),
		verb, op.Target,
		ev.ResourceType, ev.LogicalID, statusCell(ev.Status))
	if ev.Reason != "" {
		line += "  " + ev.Reason
	}
	return line
}

// statusCell colors a status code by its outcome class.
func statusCell(status string) string {
	switch {
	case strings.HasSuffix(status, "COMPLETE"):
		return text.FgGreen.Sprint(status)
	case strings.HasSuffix(status, "FAILED"):
		return text.FgRed.Sprint(status)
	default:
		return status
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderOutputs renders a stack's outputs as a key/value table.
func RenderOutputs(out io.Writer, outputs map[string]string, keys []string) {
	t := newTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	for _, k := range keys {
		t.AppendRow(table.Row{k, outputs[k]})
	}
	t.Render()
}

// RenderCandidates renders the cleanup scan result, oldest first.
func RenderCandidates(out io.Writer, candidates []reconciler.CleanupCandidate) {
	t := newTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("STACK"),
		text.FgHiCyan.Sprint("CREATED"),
		text.FgHiCyan.Sprint("AGE"),
	})
	now := time.Now()
	for _, c := range candidates {
		t.AppendRow(table.Row{
			c.Name,
			c.CreationTime.Local().Format(time.DateTime),
			now.Sub(c.CreationTime).Round(time.Minute).String(),
		})
	}
	t.Render()
}

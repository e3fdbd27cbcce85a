package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/clusterops/electionhistory/pkg/analyzer"
	"github.com/clusterops/electionhistory/pkg/event"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// noTxPlaceholder renders in place of a tx id that was never recovered.
const noTxPlaceholder = "unknown (no tx id entry seen before this switch)"

// TextFormatter renders the report as the classic sorted line listing.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes one line per cycle header, transition, and standalone event.
// All lines are pooled and sorted by their own text, not by timestamp value;
// with the shared timestamp prefix this approximates chronological order
// except across standalone/cycle boundaries. With zero cycles the report is
// exactly "No election cycles found." and standalone events are suppressed.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if !report.HasCycles() {
		_, err := fmt.Fprintln(w, "No election cycles found.")
		return err
	}

	var lines []string
	for _, cycle := range report.Cycles {
		lines = append(lines, cycleLines(cycle)...)
	}
	for _, ev := range report.Events {
		if line := eventLine(ev); line != "" {
			lines = append(lines, line)
		}
	}

	sort.Strings(lines)

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func cycleLines(cycle *analyzer.CycleReport) []string {
	lines := make([]string, 0, len(cycle.Entries)+1)
	lines = append(lines, fmt.Sprintf("%s Election started by %s",
		parser.FormatTimestamp(cycle.Start), cycle.StartedBy))
	for i := range cycle.Entries {
		lines = append(lines, transitionLine(&cycle.Entries[i]))
	}
	return lines
}

func transitionLine(entry *analyzer.CycleEntry) string {
	t := entry.Transition

	// Pad "slave" to align with "master".
	role := string(t.Role)
	if t.Role == event.RoleSlave {
		role += " "
	}

	tx := noTxPlaceholder
	if t.TxIDKnown {
		tx = fmt.Sprintf("%d (%+d)", t.TxID, entry.Delta)
	}

	line := fmt.Sprintf("%s   %s became %s Last TX: %s",
		parser.FormatTimestamp(t.Timestamp), t.ServerID, role, tx)

	if entry.Lag != nil {
		line += fmt.Sprintf("  WARN: master is %d transactions behind server %s (%d < %d)",
			entry.Lag.Behind, entry.Lag.AheadServerID, t.TxID, entry.Lag.AheadTxID)
	}

	return line
}

func eventLine(ev event.Event) string {
	switch ev := ev.(type) {
	case *event.Startup:
		id := ev.ServerID
		if id == "" {
			id = "unknown"
		}
		return fmt.Sprintf("%s [STARTUP] server %s starting for the first time",
			parser.FormatTimestamp(ev.Timestamp), id)
	case *event.Shutdown:
		return fmt.Sprintf("%s [SHUTDOWN] server %s shutting down",
			parser.FormatTimestamp(ev.Timestamp), ev.ServerID)
	case *event.MasterRebound:
		return fmt.Sprintf("%s [REBOUND] master rebound to server %s",
			parser.FormatTimestamp(ev.Timestamp), ev.ServerID)
	case *event.BranchedData:
		return fmt.Sprintf("%s [BRANCHED DATA] %s",
			parser.FormatTimestamp(ev.Timestamp), ev.Detail)
	default:
		return ""
	}
}

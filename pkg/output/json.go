package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/clusterops/electionhistory/pkg/analyzer"
	"github.com/clusterops/electionhistory/pkg/event"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as indented JSON. Unlike the text format, the
// full structure is always emitted: a run with no cycles produces empty
// arrays, and standalone events are never suppressed.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(report))
}

type jsonReport struct {
	Sources []string    `json:"sources"`
	Cycles  []jsonCycle `json:"cycles"`
	Events  []jsonEvent `json:"events"`
}

type jsonCycle struct {
	Start       string           `json:"start"`
	StartedBy   string           `json:"started_by"`
	Transitions []jsonTransition `json:"transitions"`
}

type jsonTransition struct {
	Timestamp string       `json:"timestamp"`
	ServerID  string       `json:"server_id"`
	Role      string       `json:"role"`
	TxID      *int64       `json:"tx_id"` // null when no tx id was recovered
	Delta     *int64       `json:"delta"` // null when no tx id was recovered
	Warning   *jsonWarning `json:"warning,omitempty"`
}

type jsonWarning struct {
	Behind        int64  `json:"behind"`
	AheadServerID string `json:"ahead_server_id"`
	AheadTxID     int64  `json:"ahead_tx_id"`
}

type jsonEvent struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	ServerID  string `json:"server_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func buildJSONReport(report *Report) *jsonReport {
	out := &jsonReport{
		Sources: make([]string, 0, len(report.Sources)),
		Cycles:  make([]jsonCycle, 0, len(report.Cycles)),
		Events:  make([]jsonEvent, 0, len(report.Events)),
	}
	out.Sources = append(out.Sources, report.Sources...)

	for _, cycle := range report.Cycles {
		out.Cycles = append(out.Cycles, buildJSONCycle(cycle))
	}
	for _, ev := range report.Events {
		if je, ok := buildJSONEvent(ev); ok {
			out.Events = append(out.Events, je)
		}
	}

	return out
}

func buildJSONCycle(cycle *analyzer.CycleReport) jsonCycle {
	out := jsonCycle{
		Start:       parser.FormatTimestamp(cycle.Start),
		StartedBy:   cycle.StartedBy,
		Transitions: make([]jsonTransition, 0, len(cycle.Entries)),
	}

	for _, entry := range cycle.Entries {
		t := entry.Transition
		jt := jsonTransition{
			Timestamp: parser.FormatTimestamp(t.Timestamp),
			ServerID:  t.ServerID,
			Role:      string(t.Role),
		}
		if t.TxIDKnown {
			txID, delta := t.TxID, entry.Delta
			jt.TxID = &txID
			jt.Delta = &delta
		}
		if entry.Lag != nil {
			jt.Warning = &jsonWarning{
				Behind:        entry.Lag.Behind,
				AheadServerID: entry.Lag.AheadServerID,
				AheadTxID:     entry.Lag.AheadTxID,
			}
		}
		out.Transitions = append(out.Transitions, jt)
	}

	return out
}

func buildJSONEvent(ev event.Event) (jsonEvent, bool) {
	switch ev := ev.(type) {
	case *event.Startup:
		return jsonEvent{
			Timestamp: parser.FormatTimestamp(ev.Timestamp),
			Type:      "startup",
			ServerID:  ev.ServerID,
		}, true
	case *event.Shutdown:
		return jsonEvent{
			Timestamp: parser.FormatTimestamp(ev.Timestamp),
			Type:      "shutdown",
			ServerID:  ev.ServerID,
		}, true
	case *event.MasterRebound:
		return jsonEvent{
			Timestamp: parser.FormatTimestamp(ev.Timestamp),
			Type:      "master-rebound",
			ServerID:  ev.ServerID,
		}, true
	case *event.BranchedData:
		return jsonEvent{
			Timestamp: parser.FormatTimestamp(ev.Timestamp),
			Type:      "branched-data",
			Detail:    ev.Detail,
		}, true
	default:
		return jsonEvent{}, false
	}
}

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/clusterops/electionhistory/pkg/analyzer"
	"github.com/clusterops/electionhistory/pkg/event"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter()
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	report := &Report{
		Cycles: []*analyzer.CycleReport{
			{
				Start:     testTime(9, 29, 2, 782),
				StartedBy: "2",
				Entries: []analyzer.CycleEntry{
					{
						Transition: &analyzer.RoleTransition{
							Timestamp: testTime(9, 30, 0, 0),
							ServerID:  "1",
							Role:      event.RoleSlave,
							TxID:      120,
							TxIDKnown: true,
						},
						Delta:      120,
						DeltaKnown: true,
					},
					{
						Transition: &analyzer.RoleTransition{
							Timestamp: testTime(9, 31, 0, 0),
							ServerID:  "3",
							Role:      event.RoleMaster,
						},
					},
					{
						Transition: &analyzer.RoleTransition{
							Timestamp: testTime(9, 32, 0, 0),
							ServerID:  "2",
							Role:      event.RoleMaster,
							TxID:      80,
							TxIDKnown: true,
						},
						Delta:      -40,
						DeltaKnown: true,
						Lag: &analyzer.LagWarning{
							Behind:        40,
							AheadServerID: "1",
							AheadTxID:     120,
						},
					},
				},
			},
		},
		Events: []event.Event{
			&event.Shutdown{Timestamp: testTime(9, 33, 0, 0), ServerID: "2"},
			&event.BranchedData{Timestamp: testTime(9, 34, 0, 0), Detail: "Branched data occurred"},
		},
		Sources: []string{"a/messages.log", "b/messages.log"},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed jsonReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if len(parsed.Sources) != 2 {
		t.Errorf("got %d sources, want 2", len(parsed.Sources))
	}
	if len(parsed.Cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(parsed.Cycles))
	}

	cycle := parsed.Cycles[0]
	if cycle.Start != "2012-05-30 09:29:02.782" || cycle.StartedBy != "2" {
		t.Errorf("cycle = %s by %s, want 2012-05-30 09:29:02.782 by 2", cycle.Start, cycle.StartedBy)
	}
	if len(cycle.Transitions) != 3 {
		t.Fatalf("got %d transitions, want 3", len(cycle.Transitions))
	}

	known := cycle.Transitions[0]
	if known.TxID == nil || *known.TxID != 120 {
		t.Errorf("known transition tx_id = %v, want 120", known.TxID)
	}
	if known.Delta == nil || *known.Delta != 120 {
		t.Errorf("known transition delta = %v, want 120", known.Delta)
	}
	if known.Role != "slave" {
		t.Errorf("known transition role = %q, want %q", known.Role, "slave")
	}

	unknown := cycle.Transitions[1]
	if unknown.TxID != nil || unknown.Delta != nil {
		t.Errorf("unknown transition must carry null tx_id and delta, got %v, %v", unknown.TxID, unknown.Delta)
	}
	if unknown.Warning != nil {
		t.Error("unknown transition must not warn")
	}

	flagged := cycle.Transitions[2]
	if flagged.Warning == nil {
		t.Fatal("flagged transition missing warning")
	}
	if flagged.Warning.Behind != 40 || flagged.Warning.AheadServerID != "1" || flagged.Warning.AheadTxID != 120 {
		t.Errorf("warning = %+v, want behind 40 ahead server 1 tx 120", flagged.Warning)
	}

	if len(parsed.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(parsed.Events))
	}
	if parsed.Events[0].Type != "shutdown" || parsed.Events[0].ServerID != "2" {
		t.Errorf("events[0] = %+v, want shutdown of server 2", parsed.Events[0])
	}
	if parsed.Events[1].Type != "branched-data" || parsed.Events[1].Detail == "" {
		t.Errorf("events[1] = %+v, want branched-data with detail", parsed.Events[1])
	}
}

func TestJSONFormatter_Format_EmptyRunEmitsArrays(t *testing.T) {
	// Unlike the text formatter, the zero-cycle state keeps the full
	// structure with empty arrays, never null.
	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(context.Background(), &Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	for _, key := range []string{"sources", "cycles", "events"} {
		value, ok := parsed[key]
		if !ok {
			t.Errorf("output missing %q", key)
			continue
		}
		arr, ok := value.([]any)
		if !ok {
			t.Errorf("%q = %v, want an array", key, value)
			continue
		}
		if len(arr) != 0 {
			t.Errorf("%q has %d entries, want 0", key, len(arr))
		}
	}
}

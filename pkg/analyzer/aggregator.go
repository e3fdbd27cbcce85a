package analyzer

import (
	"context"
	"io"
	"sort"

	"github.com/clusterops/electionhistory/pkg/event"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// Aggregator accumulates election cycles and standalone events across all
// input files of a run. It is not safe for concurrent use; a run processes
// files sequentially.
type Aggregator struct {
	cycles []*ElectionCycle
	events []event.Event
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Cycles returns the accumulated cycles in their current order.
func (a *Aggregator) Cycles() []*ElectionCycle {
	return a.cycles
}

// Events returns the standalone events collected across all files.
func (a *Aggregator) Events() []event.Event {
	return a.events
}

// Collect scans one file for cycle markers and standalone events, the first
// of the two passes over each file. Every election-started marker opens a
// new empty cycle in file order; startup, shutdown, rebound, and
// branched-data events are kept for the report. Role switches are left for
// the transition pass.
func (a *Aggregator) Collect(ctx context.Context, source parser.LineSource) error {
	recognizer := event.NewRecognizer()

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		ev, err := recognizer.Recognize(line)
		if err != nil {
			return err
		}

		switch ev := ev.(type) {
		case *event.ElectionStarted:
			a.cycles = append(a.cycles, &ElectionCycle{
				Start:     ev.Timestamp,
				StartedBy: ev.ServerID,
			})
		case *event.Startup, *event.Shutdown, *event.MasterRebound, *event.BranchedData:
			a.events = append(a.events, ev)
		}
	}
}

// ProcessFile runs both passes over one opened source: the marker pass, a
// rewind, then the transition pass. Transitions are returned unattached;
// attachment is global once every file has been processed.
func (a *Aggregator) ProcessFile(ctx context.Context, source parser.RewindableSource) ([]*RoleTransition, error) {
	if err := a.Collect(ctx, source); err != nil {
		return nil, err
	}
	if err := source.Rewind(); err != nil {
		return nil, err
	}

	var transitions []*RoleTransition
	correlator := NewCorrelator(source)
	for {
		t, err := correlator.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	return transitions, nil
}

// SortCycles orders cycles by start, newest first; equal starts keep their
// discovery order. Call after the marker passes of all files and before
// attaching transitions.
func (a *Aggregator) SortCycles() {
	sort.SliceStable(a.cycles, func(i, j int) bool {
		return a.cycles[i].Start.After(a.cycles[j].Start)
	})
}

// Attach adds a transition to the most recent cycle whose start is strictly
// before the transition's timestamp, assuming SortCycles has run. A
// transition at or before every cycle start belongs to no cycle; the return
// value reports whether it was attached.
func (a *Aggregator) Attach(t *RoleTransition) bool {
	for _, c := range a.cycles {
		if c.Start.Before(t.Timestamp) {
			c.Transitions = append(c.Transitions, t)
			return true
		}
	}
	return false
}

// Finalize sorts each cycle's transitions ascending by timestamp and
// computes deltas and lag warnings, returning reports in the aggregator's
// cycle order.
func (a *Aggregator) Finalize() []*CycleReport {
	reports := make([]*CycleReport, 0, len(a.cycles))
	for _, c := range a.cycles {
		reports = append(reports, finalizeCycle(c))
	}
	return reports
}

func finalizeCycle(c *ElectionCycle) *CycleReport {
	sort.SliceStable(c.Transitions, func(i, j int) bool {
		return c.Transitions[i].Timestamp.Before(c.Transitions[j].Timestamp)
	})

	report := &CycleReport{
		Start:     c.Start,
		StartedBy: c.StartedBy,
		Entries:   make([]CycleEntry, 0, len(c.Transitions)),
	}

	var (
		prevTxID int64
		maxTx    *RoleTransition
	)

	for _, t := range c.Transitions {
		entry := CycleEntry{Transition: t}

		if t.TxIDKnown {
			entry.Delta = t.TxID - prevTxID
			entry.DeltaKnown = true
			prevTxID = t.TxID

			// The maximum updates before the lag check, so a transition
			// that is itself the new maximum never warns.
			if maxTx == nil || t.TxID > maxTx.TxID {
				maxTx = t
			}
			if t.Role == event.RoleMaster && maxTx.TxID > t.TxID {
				entry.Lag = &LagWarning{
					Behind:        maxTx.TxID - t.TxID,
					AheadServerID: maxTx.ServerID,
					AheadTxID:     maxTx.TxID,
				}
			}
		}

		report.Entries = append(report.Entries, entry)
	}

	return report
}

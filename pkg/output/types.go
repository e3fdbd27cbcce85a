// Package output renders election-history reports as text or JSON.
package output

import (
	"github.com/clusterops/electionhistory/pkg/analyzer"
	"github.com/clusterops/electionhistory/pkg/event"
)

// Report is the complete output of one run.
type Report struct {
	// Cycles holds the finalized election cycles, newest start first.
	Cycles []*analyzer.CycleReport

	// Events holds the standalone events collected alongside the cycles.
	Events []event.Event

	// Sources lists the log files that were read, in processing order.
	Sources []string
}

// HasCycles reports whether any election cycle was found.
func (r *Report) HasCycles() bool {
	return len(r.Cycles) > 0
}

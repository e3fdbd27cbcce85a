// Package analyzer reconstructs master-election history from recognized log
// events: it pairs recovered tx ids with role switches and groups the
// resulting transitions into election cycles.
package analyzer

import (
	"time"

	"github.com/clusterops/electionhistory/pkg/event"
)

// RoleTransition is one server's change of role paired with the last
// committed tx id recovered before the switch. Immutable once built.
type RoleTransition struct {
	// Timestamp is when the server announced its new role.
	Timestamp time.Time

	// ServerID is the announcing server's id.
	ServerID string

	// Role is the role the server switched to.
	Role event.Role

	// TxID is the last committed transaction id seen before the switch.
	// Only meaningful when TxIDKnown is true.
	TxID int64

	// TxIDKnown reports whether any recovered tx id preceded the switch.
	// When false the transition takes no part in delta or lag arithmetic.
	TxIDKnown bool
}

// ElectionCycle is one election: a cycle-start marker plus every role
// transition attached to it. A cycle has no end marker; its extent is
// bounded by the next cycle's start.
type ElectionCycle struct {
	// Start is the cycle marker's timestamp.
	Start time.Time

	// StartedBy is the server id the master-notify flag was set to.
	StartedBy string

	// Transitions holds attached transitions in attachment order.
	// Finalize re-sorts them by timestamp.
	Transitions []*RoleTransition
}

// CycleReport is a finalized cycle: transitions in ascending timestamp
// order with deltas and lag warnings computed.
type CycleReport struct {
	// Start is the cycle marker's timestamp.
	Start time.Time

	// StartedBy is the initiating server's id.
	StartedBy string

	// Entries lists the cycle's transitions in ascending timestamp order.
	Entries []CycleEntry
}

// CycleEntry is one transition within a finalized cycle.
type CycleEntry struct {
	// Transition is the underlying role transition.
	Transition *RoleTransition

	// Delta is the tx id change against the previous known-tx transition
	// in the cycle. Only meaningful when DeltaKnown is true.
	Delta int64

	// DeltaKnown mirrors the transition's TxIDKnown.
	DeltaKnown bool

	// Lag is set when this is a master election that left the server
	// behind the highest tx id seen so far in the cycle.
	Lag *LagWarning
}

// LagWarning flags a master elected with a lower tx id than another server
// observed earlier in the same cycle.
type LagWarning struct {
	// Behind is how many transactions the new master trails by.
	Behind int64

	// AheadServerID is the server holding the highest tx id seen.
	AheadServerID string

	// AheadTxID is that server's tx id.
	AheadTxID int64
}

// Package event defines the typed events found in cluster messages.log
// lines and the recognizer that extracts them.
package event

import "time"

// Role is the operating role a server announces in a role-switch line.
type Role string

const (
	RoleMaster Role = "master"
	RoleSlave  Role = "slave"
)

// Event is a typed occurrence extracted from a single log line. The concrete
// type says what happened; consumers dispatch with a type switch.
type Event interface {
	event()
}

// RoleSwitch records a server starting in a new role.
type RoleSwitch struct {
	Timestamp time.Time
	ServerID  string
	Role      Role
}

// RecoveredTxID carries the last committed transaction id reported by a
// store-open or recovery line. These lines carry no timestamp of their own;
// the value only has meaning relative to the next role switch in the stream.
type RecoveredTxID struct {
	Value int64
}

// ElectionStarted marks the beginning of an election cycle, carrying the id
// of the server the master-notify flag was set to.
type ElectionStarted struct {
	Timestamp time.Time
	ServerID  string
}

// MasterRebound records the cluster rebinding to a master outside an
// election.
type MasterRebound struct {
	Timestamp time.Time
	ServerID  string
}

// Startup records a server starting up for the first time. ServerID is the
// ambient id carried from the most recent ZooClient line in the same pass,
// or "" when none was seen yet.
type Startup struct {
	Timestamp time.Time
	ServerID  string
}

// Shutdown records a server shutting down.
type Shutdown struct {
	Timestamp time.Time
	ServerID  string
}

// BranchedData records a branched-data incident with the raw message tail.
type BranchedData struct {
	Timestamp time.Time
	Detail    string
}

func (*RoleSwitch) event()      {}
func (*RecoveredTxID) event()   {}
func (*ElectionStarted) event() {}
func (*MasterRebound) event()   {}
func (*Startup) event()         {}
func (*Shutdown) event()        {}
func (*BranchedData) event()    {}

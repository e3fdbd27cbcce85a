package event

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/clusterops/electionhistory/pkg/parser"
)

var (
	roleSwitchRe = regexp.MustCompile(`Starting\[(\d+)\] as (master|slave)$`)

	// Recovered-tx-id phrasings, tried in this order; first match wins.
	txCleanEmptyRe = regexp.MustCompile(`Opened .+ clean empty log, version=.+, lastTxId=(\d+)`)
	txOpenedLogRe  = regexp.MustCompile(`Opened .+ log, version=.+, lastTxId=(\d+)`)
	txRecoveryRe   = regexp.MustCompile(`Internal recovery completed, scanned .+ log entries\. Recovered .+ transactions\. Last tx recovered: (\d+)`)
	txLogicalRe    = regexp.MustCompile(`Opened logical log .+ version=.+, lastTx=(\d+)`)

	electionStartedRe = regexp.MustCompile(`master-notify set to (\d+)`)
	masterReboundRe   = regexp.MustCompile(`master-rebound set to (\d+)`)
	startupRe         = regexp.MustCompile(`newMaster called Starting up for the first time`)
	shutdownRe        = regexp.MustCompile(`Shutdown\[(\d+)\],`)
	branchedDataRe    = regexp.MustCompile(`Branched data occurred`)
	zooClientRe       = regexp.MustCompile(`ZooClient\[serverId:(\d+)`)
)

var txIDRes = []*regexp.Regexp{txCleanEmptyRe, txOpenedLogRe, txRecoveryRe, txLogicalRe}

// branchedDetailOffset is where the branched-data payload starts: the
// timestamp prefix plus the ": " separator.
const branchedDetailOffset = parser.PrefixWidth + len(": ")

// Recognizer matches raw lines against the fixed pattern table. It is
// stateful: ZooClient lines update the current server id that Startup
// events carry, so use one Recognizer per scan pass.
type Recognizer struct {
	currentServerID string
}

// NewRecognizer returns a Recognizer with no ambient server id yet.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// CurrentServerID returns the ambient server id from the most recent
// ZooClient line, or "" when none was seen in this pass.
func (r *Recognizer) CurrentServerID() string {
	return r.currentServerID
}

// Recognize matches a line against the pattern table and returns the typed
// event it produces, or (nil, nil) when the line matches nothing. Patterns
// are tried in a fixed order and the first match wins. Timestamps are parsed
// only for lines that produce a timestamped event; a malformed prefix on
// such a line is an error carrying the line's source and number.
func (r *Recognizer) Recognize(line *parser.Line) (Event, error) {
	if m := roleSwitchRe.FindStringSubmatch(line.Text); m != nil {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return &RoleSwitch{Timestamp: ts, ServerID: m[1], Role: Role(m[2])}, nil
	}

	for _, re := range txIDRes {
		m := re.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parsing tx id %q: %w", line.Source, line.Num, m[1], err)
		}
		return &RecoveredTxID{Value: value}, nil
	}

	if m := electionStartedRe.FindStringSubmatch(line.Text); m != nil {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return &ElectionStarted{Timestamp: ts, ServerID: m[1]}, nil
	}

	if m := masterReboundRe.FindStringSubmatch(line.Text); m != nil {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return &MasterRebound{Timestamp: ts, ServerID: m[1]}, nil
	}

	if startupRe.MatchString(line.Text) {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return &Startup{Timestamp: ts, ServerID: r.currentServerID}, nil
	}

	if m := shutdownRe.FindStringSubmatch(line.Text); m != nil {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return &Shutdown{Timestamp: ts, ServerID: m[1]}, nil
	}

	if branchedDataRe.MatchString(line.Text) {
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		detail := ""
		if len(line.Text) > branchedDetailOffset {
			detail = line.Text[branchedDetailOffset:]
		}
		return &BranchedData{Timestamp: ts, Detail: detail}, nil
	}

	if m := zooClientRe.FindStringSubmatch(line.Text); m != nil {
		// State update only; ZooClient lines emit no event.
		r.currentServerID = m[1]
		return nil, nil
	}

	return nil, nil
}

func timestampOf(line *parser.Line) (time.Time, error) {
	ts, err := parser.ParseTimestamp(line.Text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s:%d: %w", line.Source, line.Num, err)
	}
	return ts, nil
}

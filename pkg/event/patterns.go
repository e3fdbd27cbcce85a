package event

import "regexp"

// PatternInfo describes one recognized line shape.
type PatternInfo struct {
	Name    string         // Short identifier, stable across output formats
	Expr    string         // Pattern source text (set from Pattern)
	Pattern *regexp.Regexp // Compiled pattern, shared with Recognize
	Example string         // A full log line the pattern matches
	Emits   string         // What recognizing the pattern produces

	// NeedsTimestamp marks patterns whose recognition parses the line's
	// timestamp prefix. A matching line with a malformed prefix aborts a
	// run only for these patterns.
	NeedsTimestamp bool
}

// Patterns returns the fixed table of recognized line shapes in match order.
// The same compiled expressions drive Recognize, the patterns command, and
// log inspection.
func Patterns() []PatternInfo {
	patterns := []PatternInfo{
		{
			Name:           "role-switch",
			Pattern:        roleSwitchRe,
			Example:        "2012-05-30 09:28:56.233-0700: Starting[103] as slave",
			Emits:          "role switch (server id, master|slave)",
			NeedsTimestamp: true,
		},
		{
			Name:    "tx-id-clean-empty-log",
			Pattern: txCleanEmptyRe,
			Example: "2012-05-30 09:28:56.233-0700: Opened [/var/lib/data/graph.db/nioneo_logical.log.1] clean empty log, version=0, lastTxId=1",
			Emits:   "recovered tx id",
		},
		{
			Name:    "tx-id-opened-log",
			Pattern: txOpenedLogRe,
			Example: "2012-05-30 09:28:56.233-0700: Opened [/var/lib/data/graph.db/nioneo_logical.log.2] log, version=4, lastTxId=377",
			Emits:   "recovered tx id",
		},
		{
			Name:    "tx-id-recovery",
			Pattern: txRecoveryRe,
			Example: "2012-05-30 09:28:56.233-0700: Internal recovery completed, scanned 210 log entries. Recovered 12 transactions. Last tx recovered: 2390",
			Emits:   "recovered tx id",
		},
		{
			Name:    "tx-id-logical-log",
			Pattern: txLogicalRe,
			Example: "2012-05-30 09:28:56.233-0700: Opened logical log [/var/lib/data/graph.db/nioneo_logical.log.1] version=3, lastTx=1733",
			Emits:   "recovered tx id",
		},
		{
			Name:           "election-started",
			Pattern:        electionStartedRe,
			Example:        "2012-05-30 09:29:02.782-0700: master-notify set to 2",
			Emits:          "election cycle start",
			NeedsTimestamp: true,
		},
		{
			Name:           "master-rebound",
			Pattern:        masterReboundRe,
			Example:        "2012-05-30 09:29:05.021-0700: master-rebound set to 1",
			Emits:          "master rebound",
			NeedsTimestamp: true,
		},
		{
			Name:           "startup",
			Pattern:        startupRe,
			Example:        "2012-05-30 09:28:50.000-0700: newMaster called Starting up for the first time",
			Emits:          "first-time startup (server id from ambient ZooClient context)",
			NeedsTimestamp: true,
		},
		{
			Name:           "shutdown",
			Pattern:        shutdownRe,
			Example:        "2012-05-30 09:30:00.000-0700: Shutdown[2], localhost",
			Emits:          "shutdown",
			NeedsTimestamp: true,
		},
		{
			Name:           "branched-data",
			Pattern:        branchedDataRe,
			Example:        "2012-06-30 11:02:37.932-0700: Branched data occurred, moved to branched/1341079357932",
			Emits:          "branched data incident",
			NeedsTimestamp: true,
		},
		{
			Name:    "zoo-client",
			Pattern: zooClientRe,
			Example: "2012-05-30 09:28:49.500-0700: ZooClient[serverId:2] session established",
			Emits:   "ambient server id update (no event)",
		},
	}

	for i := range patterns {
		patterns[i].Expr = patterns[i].Pattern.String()
	}

	return patterns
}

package analyzer

import (
	"context"
	"io"

	"github.com/clusterops/electionhistory/pkg/event"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// Correlator pairs each role switch with the most recent recovered tx id
// that preceded it on the same stream. It consumes its source through a
// single forward cursor: lines are never revisited, and a fresh Correlator
// is needed for each pass.
type Correlator struct {
	source     parser.LineSource
	recognizer *event.Recognizer
}

// NewCorrelator returns a Correlator reading from source.
func NewCorrelator(source parser.LineSource) *Correlator {
	return &Correlator{
		source:     source,
		recognizer: event.NewRecognizer(),
	}
}

// Next returns the next role transition, or io.EOF when the stream ends.
//
// The scan runs in two phases per transition: forward to a recovered tx id,
// then on to the role switch it belongs to. A switch found before any tx id
// is emitted with TxIDKnown=false. A tx id line seen while waiting for the
// switch replaces the noted value, so the transition always carries the
// most recent preceding tx id. The noted value resets after every emitted
// transition, and a tx id with no following switch is discarded at end of
// stream. Tx-id lines appearing before their switch is a structural
// assumption of the log format, not validated here.
func (c *Correlator) Next(ctx context.Context) (*RoleTransition, error) {
	var (
		txID    int64
		txKnown bool
	)

	for {
		line, err := c.source.Next(ctx)
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		ev, err := c.recognizer.Recognize(line)
		if err != nil {
			return nil, err
		}

		switch ev := ev.(type) {
		case *event.RecoveredTxID:
			txID, txKnown = ev.Value, true
		case *event.RoleSwitch:
			return &RoleTransition{
				Timestamp: ev.Timestamp,
				ServerID:  ev.ServerID,
				Role:      ev.Role,
				TxID:      txID,
				TxIDKnown: txKnown,
			}, nil
		}
	}
}

// Electionhistory - Cluster Master Election History
//
// Electionhistory reconstructs the master election history of a cluster from
// its messages.log files: who became master or slave, when, and at which
// recovered transaction id.
package main

import (
	"os"

	"github.com/clusterops/electionhistory/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

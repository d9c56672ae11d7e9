// Command homicide-etl consolidates and normalises homicide incident extracts.
package main

import (
	"os"

	"github.com/custodia-labs/homicide-etl/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

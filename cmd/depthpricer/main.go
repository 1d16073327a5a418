// Command depthpricer reads a line-oriented add/reduce feed on stdin for a
// single instrument and streams the income from selling target_size
// shares into the bid side, and the expense of buying target_size from
// the ask side, to stdout. See spec.md for the full wire protocol.
package main

import (
	"os"

	"github.com/lightsgoout/depthpricer/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

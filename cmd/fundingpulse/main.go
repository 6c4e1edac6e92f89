// Command fundingpulse serves the tech-funding dashboard feed and exports
// batch reports from a funding dataset.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

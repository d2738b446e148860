// Command github-connector drives the GitHub social connector from the shell,
// for checking a connector configuration and walking through a login by hand.
package main

import (
	"fmt"
	"os"

	"github.com/giantswarm/social-connector/providers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if code := providers.Classify(err); code != providers.ErrorCodeUnmapped {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

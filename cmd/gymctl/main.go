// Command gymctl is the operator CLI: it migrates local data to the remote
// store, flips the backend flag, checks the local store and mints tokens.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

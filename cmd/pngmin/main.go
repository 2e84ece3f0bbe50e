// Command pngmin losslessly re-encodes PNG files to make them smaller.
//
// Usage:
//
//	pngmin [flags] <file>...
//
// Without -o, --in-place or --suffix, pngmin only reports the size it would reach.
// Files are written only when the result is smaller, unless --force is given.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

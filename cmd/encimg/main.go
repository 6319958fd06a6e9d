// encimg converts files, multi-file bundles, and text into password-
// protected, authenticated artifacts that travel as a raw envelope, a
// Base64 string, or a PNG image carrier, and reverses the process.
package main

import (
	"os"

	"encimg/internal/cli"
)

const version = "v0.1.0"

func main() {
	os.Exit(cli.Execute(version))
}

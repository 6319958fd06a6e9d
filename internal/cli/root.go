// Package cli implements the encimg command tree: encrypt, decrypt, text,
// base64, and password subcommands built on cobra, wired to the pipeline
// orchestrator.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"encimg/internal/cliutil"
	"encimg/internal/log"
)

// Version is set by main at build time.
var Version = "dev"

var debugLogging bool

var rootCmd = &cobra.Command{
	Use:   "encimg",
	Short: "Password-protected, authenticated data artifacts you can carry as bytes, text, or a PNG",
	Long: `encimg converts arbitrary files, multi-file bundles, or text into a
self-describing, password-protected artifact. The artifact travels as a
raw envelope, a Base64 string, or a PNG image whose pixels embed that
Base64 string. Running the pipeline in reverse recovers the original
bytes and filesystem metadata.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugLogging {
			log.EnableDebugLogging()
		}
	},
}

// globalReporter receives SIGINT/SIGTERM so an in-flight operation can be
// cancelled cooperatively rather than killed mid-write.
var globalReporter *cliutil.Reporter

// Execute runs the command tree, returning the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if globalReporter != nil {
			globalReporter.Cancel()
			fmt.Fprintln(os.Stderr, "\nCancelling...")
		} else {
			os.Exit(130)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging to stderr")
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"encimg/internal/cliutil"
	"encimg/internal/imagecodec"
	"encimg/internal/pipeline"
)

func init() {
	decryptCmd.SilenceErrors = true
	decryptCmd.SilenceUsage = true
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an envelope, Base64 string, or PNG back to the original file(s)",
	Long: `Decrypt an artifact produced by encimg encrypt.

The input format (raw envelope, Base64 text, or PNG) is chosen from the
input file's extension unless --format overrides it. A multi-file
archive is unpacked automatically into the output directory.

Examples:
  encimg decrypt -i secret.encimg -o secret.txt
  encimg decrypt -i bundle.png --format png -o out/
  echo "mypassword" | encimg decrypt -i secret.encimg -P`,
	RunE: runDecrypt,
}

var (
	decInput    string
	decOutput   string
	decPassword string
	decStdin    bool
	decFormat   string
	decQuiet    bool
	decYes      bool
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decInput, "input", "i", "", "Input artifact to decrypt")
	decryptCmd.Flags().StringVarP(&decOutput, "output", "o", "", "Output file or directory (auto-detected if omitted)")
	decryptCmd.Flags().StringVarP(&decPassword, "password", "p", "", "Decryption password")
	decryptCmd.Flags().BoolVarP(&decStdin, "password-stdin", "P", false, "Read password from stdin")
	decryptCmd.Flags().StringVar(&decFormat, "format", "", "Input format: envelope, base64, or png (default: inferred from extension)")
	decryptCmd.Flags().BoolVarP(&decQuiet, "quiet", "q", false, "Suppress progress output")
	decryptCmd.Flags().BoolVarP(&decYes, "yes", "y", false, "Overwrite existing output without prompting")

	_ = decryptCmd.MarkFlagRequired("input")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(decInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", decInput, err)
	}

	format := decFormat
	if format == "" {
		format = inferFormat(decInput, raw)
	}

	password, err := resolvePassword(decPassword, decStdin, false)
	if err != nil {
		return err
	}

	reporter := cliutil.NewReporter(decQuiet)
	globalReporter = reporter

	o := &pipeline.Orchestrator{}
	var result pipeline.DecryptResult
	switch format {
	case "png":
		result, err = o.DecryptImage(raw, password, reporter)
	case "base64":
		result, err = o.DecryptBase64(strings.TrimSpace(string(raw)), password, reporter)
	default:
		result, err = o.DecryptEnvelope(raw, password, reporter)
	}
	reporter.Finish()
	if err != nil {
		reporter.PrintError("%v", err)
		return err
	}

	if result.IsArchive {
		return writeArchiveEntries(result, decOutput, decYes, reporter)
	}

	outPath := decOutput
	if outPath == "" {
		outPath = result.Metadata.Filename
		if outPath == "" {
			outPath = "decrypted.out"
		}
	}
	if err := confirmOverwrite(outPath, decYes); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, result.Data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	reporter.PrintSuccess("Wrote %s", outPath)
	return nil
}

func writeArchiveEntries(result pipeline.DecryptResult, outDir string, yes bool, reporter *cliutil.Reporter) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	for _, entry := range result.Entries {
		path := filepath.Join(outDir, entry.Name)
		if err := confirmOverwrite(path, yes); err != nil {
			return err
		}
		if err := os.WriteFile(path, entry.Data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		reporter.PrintSuccess("Wrote %s", path)
	}
	return nil
}

// inferFormat guesses the artifact encoding from its extension, falling
// back to sniffing the PNG magic bytes against the raw content.
func inferFormat(path string, raw []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".txt", ".b64":
		return "base64"
	}
	if imagecodec.LooksLikePNG(raw) {
		return "png"
	}
	return "envelope"
}

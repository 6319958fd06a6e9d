package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"encimg/internal/cliutil"
	"encimg/internal/pipeline"
	"encimg/internal/util"
)

func init() {
	encryptCmd.SilenceErrors = true
	encryptCmd.SilenceUsage = true
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt one or more files into an envelope, Base64 string, or PNG",
	Long: `Encrypt one or more files into a password-protected envelope.

With more than one input file, the files are packed into a single archive
before encryption. The artifact can be written as a raw envelope, a Base64
text file, and/or a PNG image carrier.

Examples:
  encimg encrypt -i secret.txt -o secret
  encimg encrypt -i a.txt -i b.txt -o bundle --png
  echo "mypassword" | encimg encrypt -i secret.txt -o secret -P`,
	RunE: runEncrypt,
}

var (
	encInput    []string
	encOutput   string
	encPassword string
	encStdin    bool
	encBase64   bool
	encPNG      bool
	encQuiet    bool
	encYes      bool
	encStats    bool
)

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringArrayVarP(&encInput, "input", "i", nil, "Input file(s) to encrypt (repeatable)")
	encryptCmd.Flags().StringVarP(&encOutput, "output", "o", "", "Output file path (without extension)")
	encryptCmd.Flags().StringVarP(&encPassword, "password", "p", "", "Encryption password")
	encryptCmd.Flags().BoolVarP(&encStdin, "password-stdin", "P", false, "Read password from stdin")
	encryptCmd.Flags().BoolVar(&encBase64, "base64", false, "Also write a .b64.txt Base64 rendering")
	encryptCmd.Flags().BoolVar(&encPNG, "png", false, "Also write a .png image carrier")
	encryptCmd.Flags().BoolVarP(&encQuiet, "quiet", "q", false, "Suppress progress output")
	encryptCmd.Flags().BoolVarP(&encYes, "yes", "y", false, "Overwrite existing output without prompting")
	encryptCmd.Flags().BoolVar(&encStats, "stats", false, "Report how much each output artifact grew relative to the source")

	_ = encryptCmd.MarkFlagRequired("input")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	if len(encInput) == 0 {
		return fmt.Errorf("at least one input file is required (-i)")
	}

	files := make([]pipeline.FileInput, 0, len(encInput))
	var sourceSize int64
	for _, path := range encInput {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sourceSize += int64(len(data))
		files = append(files, pipeline.FileInput{
			Name:     filepath.Base(path),
			MimeType: mimeFromExtension(path),
			Data:     data,
		})
	}

	outputBase := encOutput
	if outputBase == "" {
		if len(encInput) == 1 {
			outputBase = encInput[0]
		} else {
			outputBase = "encrypted"
		}
	}
	envelopePath := outputBase + ".encimg"

	if err := confirmOverwrite(envelopePath, encYes); err != nil {
		return err
	}

	password, err := resolvePassword(encPassword, encStdin, true)
	if err != nil {
		return err
	}

	reporter := cliutil.NewReporter(encQuiet)
	globalReporter = reporter

	o := &pipeline.Orchestrator{}
	envelope, err := o.EncryptFiles(files, password, reporter)
	reporter.Finish()
	if err != nil {
		reporter.PrintError("%v", err)
		return err
	}

	if err := os.WriteFile(envelopePath, envelope, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", envelopePath, err)
	}

	if encBase64 {
		b64 := pipeline.EncodeBase64(envelope)
		b64Path := outputBase + ".b64.txt"
		if err := os.WriteFile(b64Path, []byte(b64), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", b64Path, err)
		}
		reporter.PrintSuccess("Wrote %s", b64Path)
		if encStats {
			reporter.PrintSuccess("  expansion: %s", util.FormatRatio(util.ExpansionRatio(sourceSize, int64(len(b64)))))
		}
	}

	if encPNG {
		pngPath := outputBase + ".png"
		png, err := pipeline.EncodeImage(envelope, reporter)
		if err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		if err := os.WriteFile(pngPath, png, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", pngPath, err)
		}
		reporter.PrintSuccess("Wrote %s", pngPath)
		if encStats {
			reporter.PrintSuccess("  expansion: %s", util.FormatRatio(util.ExpansionRatio(sourceSize, int64(len(png)))))
		}
	}

	reporter.PrintSuccess("Wrote %s (%s)", envelopePath, util.ByteSize(int64(len(envelope))))
	if encStats {
		reporter.PrintSuccess("  expansion: %s", util.FormatRatio(util.ExpansionRatio(sourceSize, int64(len(envelope)))))
	}
	return nil
}

func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func confirmOverwrite(path string, yes bool) error {
	if yes {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	fmt.Fprintf(os.Stderr, "Output file %s already exists. Overwrite? [y/N]: ", path)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		return fmt.Errorf("operation cancelled")
	}
	return nil
}

func resolvePassword(flagValue string, fromStdin bool, confirm bool) (string, error) {
	if fromStdin {
		return cliutil.ReadPasswordFromStdin()
	}
	if flagValue != "" {
		return flagValue, nil
	}
	pw, err := cliutil.ReadPasswordInteractive(confirm)
	if err != nil {
		return "", fmt.Errorf("password input: %w", err)
	}
	return pw, nil
}

package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"encimg/internal/pipeline"
)

func init() {
	base64Cmd.SilenceErrors = true
	base64Cmd.SilenceUsage = true
}

var base64Cmd = &cobra.Command{
	Use:   "base64",
	Short: "Render an existing envelope as a Base64 string, or decode one back",
	Long: `Convert between a raw encimg envelope file and its Base64 textual
rendering, without touching the password or plaintext.

Examples:
  encimg base64 -i secret.encimg -o secret.b64.txt
  encimg base64 --decode -i secret.b64.txt -o secret.encimg`,
	RunE: runBase64,
}

var (
	b64Input  string
	b64Output string
	b64Decode bool
)

func init() {
	rootCmd.AddCommand(base64Cmd)

	base64Cmd.Flags().StringVarP(&b64Input, "input", "i", "", "Input file")
	base64Cmd.Flags().StringVarP(&b64Output, "output", "o", "", "Output file (stdout if omitted)")
	base64Cmd.Flags().BoolVar(&b64Decode, "decode", false, "Decode Base64 back to a raw envelope instead of encoding")

	_ = base64Cmd.MarkFlagRequired("input")
}

func runBase64(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(b64Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", b64Input, err)
	}

	var out []byte
	if b64Decode {
		out, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return fmt.Errorf("decoding base64: %w", err)
		}
	} else {
		out = []byte(pipeline.EncodeBase64(raw))
	}

	if b64Output == "" {
		fmt.Print(string(out))
		return nil
	}
	return os.WriteFile(b64Output, out, 0o600)
}

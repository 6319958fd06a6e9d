package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"encimg/internal/cliutil"
	"encimg/internal/pipeline"
)

func init() {
	textCmd.SilenceErrors = true
	textCmd.SilenceUsage = true
}

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Encrypt a plain-text message into a Base64 string",
	Long: `Encrypt a short plain-text message and print the result as Base64,
skipping the archive step and any file on disk beyond what you redirect.

Examples:
  encimg text -m "the launch code is 4815162342" -p "pw"
  echo "pw" | encimg text -m "some secret" -P`,
	RunE: runText,
}

var (
	txtMessage  string
	txtPassword string
	txtStdin    bool
)

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&txtMessage, "message", "m", "", "Message to encrypt (prompted if omitted and not piped)")
	textCmd.Flags().StringVarP(&txtPassword, "password", "p", "", "Encryption password")
	textCmd.Flags().BoolVarP(&txtStdin, "password-stdin", "P", false, "Read password from stdin")
}

func runText(cmd *cobra.Command, args []string) error {
	message := txtMessage
	if message == "" {
		if txtStdin {
			return fmt.Errorf("--message is required when reading the password from stdin")
		}
		fmt.Fprint(os.Stderr, "Message: ")
		var err error
		message, err = cliutil.ReadPasswordFromStdin() // reuses the line-reader; message is not secret but the helper suffices
		if err != nil {
			return fmt.Errorf("reading message: %w", err)
		}
	}

	password, err := resolvePassword(txtPassword, txtStdin, true)
	if err != nil {
		return err
	}

	o := &pipeline.Orchestrator{}
	envelope, err := o.EncryptText(message, password, nil)
	if err != nil {
		return err
	}

	fmt.Println(pipeline.EncodeBase64(envelope))
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"encimg/internal/cliutil"
)

func init() {
	passwordCmd.SilenceErrors = true
	passwordCmd.SilenceUsage = true
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate a random password and estimate its strength",
	Long: `Generate a cryptographically random password from the requested
character classes and print its zxcvbn strength score (0-4).

Examples:
  encimg password --length 24 --upper --lower --numbers --symbols
  encimg password --length 16 --lower --numbers`,
	RunE: runPassword,
}

var (
	pwLength  int
	pwUpper   bool
	pwLower   bool
	pwNumbers bool
	pwSymbols bool
)

func init() {
	rootCmd.AddCommand(passwordCmd)

	passwordCmd.Flags().IntVar(&pwLength, "length", 20, "Password length")
	passwordCmd.Flags().BoolVar(&pwUpper, "upper", true, "Include uppercase letters")
	passwordCmd.Flags().BoolVar(&pwLower, "lower", true, "Include lowercase letters")
	passwordCmd.Flags().BoolVar(&pwNumbers, "numbers", true, "Include digits")
	passwordCmd.Flags().BoolVar(&pwSymbols, "symbols", false, "Include symbols")
}

func runPassword(cmd *cobra.Command, args []string) error {
	pw, err := cliutil.GeneratePassword(cliutil.PassgenOptions{
		Length:  pwLength,
		Upper:   pwUpper,
		Lower:   pwLower,
		Numbers: pwNumbers,
		Symbols: pwSymbols,
	})
	if err != nil {
		return err
	}
	if pw == "" {
		return fmt.Errorf("no character classes enabled, or length is zero")
	}

	score := cliutil.StrengthScore(pw)
	fmt.Println(pw)
	fmt.Printf("Strength: %d/4\n", score)
	return nil
}

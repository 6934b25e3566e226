package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/merchant/internal/numeral"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <value>...",
	Short: "Convert between numerals and integers",
	Long: `Convert turns integers into numerals and numerals into integers.
Unlike a session, conversion errors are reported in detail.

Example:
  merchant convert 1944
  merchant convert MCMXLIV XLII 3999`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, arg := range args {
		result, err := convert(arg)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", arg, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", arg, result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(args))
	}
	return nil
}

// convert treats signed digit strings as integers and anything else as a numeral
func convert(value string) (string, error) {
	if looksNumeric(value) {
		return numeral.ToNumeral(value)
	}

	n, err := numeral.ToInteger(strings.ToUpper(value))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func looksNumeric(value string) bool {
	value = strings.TrimLeft(value, "+-")
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

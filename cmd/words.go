package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/format"
)

var wordsCmd = &cobra.Command{
	Use:   "words [amount]",
	Short: "Spell out an amount in Indian-English words",
	Long: `Print an amount in words using lakh and crore grouping, exactly as it
appears on the invoice. Amounts may include grouping commas and a Rs. or ₹
prefix. With --figures the formatted amount is printed first.`,
	Example: `  invoicer words 150000
  # One Lakh Fifty Thousand Rupees Only

  invoicer words "Rs. 1,23,45,678.50" --figures`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().Bool("figures", false, "Also print the amount in figures")
	wordsCmd.Flags().String("symbol", "Rs. ", "Currency symbol used with --figures")
}

func runWords(cmd *cobra.Command, args []string) error {
	figures, _ := cmd.Flags().GetBool("figures")
	symbol, _ := cmd.Flags().GetString("symbol")

	amount, err := format.ParseAmount(args[0])
	if err != nil {
		return err
	}

	words, err := format.ToWords(amount)
	if err != nil {
		return err
	}

	if figures {
		text, err := format.FormatCurrency(amount, symbol)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), words+" Only")
	return nil
}

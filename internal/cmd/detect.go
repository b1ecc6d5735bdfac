package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nebulazer123/moneymap/internal/anomaly"
	"github.com/Nebulazer123/moneymap/internal/generator"
	"github.com/Nebulazer123/moneymap/internal/ui"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

var (
	detectOutput string
	detectRescan bool
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <dataset>",
	Short: "Scan a dataset for suspicious charges",
	Long: `Scan a previously generated dataset and report suspicious charges.

Each merchant's normal billing pattern (amounts, interval, billing day) is
derived from the full history, then every charge is checked against it.
Charges are labeled as duplicates, overcharges, or unexpected charges.

By default, labels already present in the file are kept and only unlabeled
charges are examined. Use --rescan to strip all labels and re-detect from
scratch, which reports only what the pattern analysis can find on its own.

Example:
  moneymap detect transactions.json
  moneymap detect transactions.csv --rescan --output relabeled.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectOutput, "output", "", "write the labeled dataset to this file")
	detectCmd.Flags().BoolVar(&detectRescan, "rescan", false, "drop existing labels and re-detect from scratch")
}

func runDetect(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	p, txns, err := generator.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if len(txns) == 0 {
		fmt.Fprintln(os.Stderr, u.Error("dataset is empty"))
		os.Exit(1)
	}

	if detectRescan {
		for i := range txns {
			txns[i].Suspicious = false
			txns[i].SuspiciousType = ""
			txns[i].SuspicionReason = ""
			txns[i].ParentID = ""
		}
	}

	// Scan everything; patterns are derived from the same history.
	txns = anomaly.Detect(txns, time.Time{})

	fmt.Println(u.Header("MoneyMap Anomaly Report"))
	fmt.Println()

	flagged := 0
	for i := range txns {
		t := &txns[i]
		if !t.Suspicious {
			continue
		}
		flagged++
		fmt.Println(u.FlaggedRow(
			t.Date.Format("2006-01-02"),
			utils.FormatUSD(-t.Amount),
			t.Merchant,
			string(t.SuspiciousType),
			t.SuspicionReason,
		))
	}

	if flagged == 0 {
		fmt.Println(u.Muted("  No suspicious charges found."))
	}
	fmt.Println()
	fmt.Println(u.KeyValue("Scanned", fmt.Sprintf("%d transactions", len(txns))))
	fmt.Println(u.KeyValue("Flagged", fmt.Sprintf("%d", flagged)))

	if detectOutput != "" {
		if err := generator.WriteFile(detectOutput, p, txns); err != nil {
			fmt.Fprintln(os.Stderr, u.Error(err.Error()))
			os.Exit(1)
		}
		fmt.Println()
		fmt.Println(u.Success("Labeled dataset written to: " + detectOutput))
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nebulazer123/moneymap/internal/config"
	"github.com/Nebulazer123/moneymap/internal/data"
	"github.com/Nebulazer123/moneymap/internal/generator"
	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/profile"
	"github.com/Nebulazer123/moneymap/internal/ui"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic transaction history",
	Long: `Generate a deterministic synthetic transaction history.

The seed phrase fully determines the output: the lifestyle profile, every
transaction amount, date, and identifier, and which anomalies get planted.
Running twice with the same seed and range produces identical files.

With --extend, months already present in the given dataset are kept
verbatim and only new months are appended. Anomalies are planted and
detected only within the newly generated months.

Example:
  moneymap generate --seed "jane doe 2024" --start 2024-01 --months 12 --output txns.json
  moneymap generate --seed "jane doe 2024" --extend txns.json --months 6`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("seed", "", "seed phrase (required; same phrase = same dataset)")
	generateCmd.Flags().String("start", "2024-01", "first month of history (YYYY-MM)")
	generateCmd.Flags().Int("months", 12, "number of months to generate")
	generateCmd.Flags().String("output", "./transactions.json", "output file (.csv or .json)")
	generateCmd.Flags().String("extend", "", "existing dataset to extend instead of starting fresh")
	generateCmd.Flags().Int("anomaly-min", 2, "minimum anomalies to plant")
	generateCmd.Flags().Int("anomaly-max", 6, "maximum anomalies to plant")

	viper.BindPFlag("generate.seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("generate.start_month", generateCmd.Flags().Lookup("start"))
	viper.BindPFlag("generate.months", generateCmd.Flags().Lookup("months"))
	viper.BindPFlag("generate.output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("generate.extend", generateCmd.Flags().Lookup("extend"))
	viper.BindPFlag("anomaly.count_min", generateCmd.Flags().Lookup("anomaly-min"))
	viper.BindPFlag("anomaly.count_max", generateCmd.Flags().Lookup("anomaly-max"))
}

func runGenerate(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	catalog, err := data.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	p := profile.Build(cfg.Generate.Seed, catalog)

	mode := generator.ModeFull
	var existing []models.Transaction
	if cfg.Generate.Extend != "" {
		mode = generator.ModeExtend
		_, existing, err = generator.ReadFile(cfg.Generate.Extend)
		if err != nil {
			fmt.Fprintln(os.Stderr, u.Error(err.Error()))
			os.Exit(1)
		}
	}

	start, _ := time.Parse("2006-01", cfg.Generate.StartMonth)
	if mode == generator.ModeExtend && !cmd.Flags().Changed("start") {
		// Continue from the month after the last generated month. Planted
		// anomalies can spill into the following month; resuming from one
		// of those would skip that month for good.
		if resume, ok := generator.ResumeMonth(existing); ok {
			start = resume
		}
	}
	end := start.AddDate(0, cfg.Generate.Months-1, 0)

	fmt.Println(u.Header("MoneyMap Dataset Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Seed", cfg.Generate.Seed))
	fmt.Println(u.KeyValue("Range", fmt.Sprintf("%s to %s (%d months)",
		start.Format("2006-01"), end.Format("2006-01"), cfg.Generate.Months)))
	fmt.Println(u.KeyValue("Mode", string(mode)))
	if mode == generator.ModeExtend {
		fmt.Println(u.KeyValue("Extending", fmt.Sprintf("%s (%d records)", cfg.Generate.Extend, len(existing))))
	}
	fmt.Println(u.KeyValue("Output", cfg.Generate.Output))
	fmt.Println()

	if verbose {
		printProfile(u, p)
	}

	engine := generator.New(catalog)
	engine.AnomalyMin = cfg.Anomaly.CountMin
	engine.AnomalyMax = cfg.Anomaly.CountMax

	spin := u.NewSpinner(fmt.Sprintf("Generating %d months of history", cfg.Generate.Months))
	spin.Start()
	txns, err := engine.Generate(p, start, end, mode, existing)
	if err != nil {
		spin.Error(err.Error())
		os.Exit(1)
	}
	spin.Success(fmt.Sprintf("%d transactions", len(txns)))

	if err := generator.WriteFile(cfg.Generate.Output, p, txns); err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	printGenerateSummary(u, txns)
	fmt.Println()
	fmt.Println(u.Success("Dataset written to: " + cfg.Generate.Output))
}

// printProfile shows the derived lifestyle profile under --verbose
func printProfile(u *ui.UI, p *models.LifestyleProfile) {
	fmt.Println(u.Bold("  Derived profile"))
	fmt.Println(u.KeyValue("Bank", p.PrimaryBank))
	fmt.Println(u.KeyValue("Housing", fmt.Sprintf("%s (%s)", p.HousingProvider, p.HousingType)))
	fmt.Println(u.KeyValue("Utilities", fmt.Sprintf("%d", len(p.Utilities))))
	fmt.Println(u.KeyValue("Subscriptions", fmt.Sprintf("%d (%s/mo)", len(p.Subscriptions),
		fmt.Sprintf("$%.2f", p.MonthlySubscriptionTotal()))))
	fmt.Println()
}

// printGenerateSummary prints a styled generation summary
func printGenerateSummary(u *ui.UI, txns []models.Transaction) {
	var flagged, dup, over, unexp int
	for i := range txns {
		if !txns[i].Suspicious {
			continue
		}
		flagged++
		switch txns[i].SuspiciousType {
		case models.SuspiciousDuplicate:
			dup++
		case models.SuspiciousOvercharge:
			over++
		case models.SuspiciousUnexpected:
			unexp++
		}
	}

	items := []ui.KV{
		{Key: "Transactions", Value: fmt.Sprintf("%d", len(txns))},
		{Key: "Flagged", Value: fmt.Sprintf("%d", flagged)},
		{Key: "Duplicates", Value: fmt.Sprintf("%d", dup)},
		{Key: "Overcharges", Value: fmt.Sprintf("%d", over)},
		{Key: "Unexpected", Value: fmt.Sprintf("%d", unexp)},
	}
	if len(txns) > 0 {
		items = append([]ui.KV{
			{Key: "First", Value: txns[0].Date.Format("2006-01-02")},
			{Key: "Last", Value: txns[len(txns)-1].Date.Format("2006-01-02")},
		}, items...)
	}

	fmt.Println(u.SummaryBox("Generation Complete", items))
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nebulazer123/moneymap/internal/config"
	"github.com/Nebulazer123/moneymap/internal/database"
	"github.com/Nebulazer123/moneymap/internal/generator"
	"github.com/Nebulazer123/moneymap/internal/ui"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <dataset>",
	Short: "Import a dataset into MySQL/MariaDB",
	Long: `Import a generated dataset into a MySQL/MariaDB database.

The transactions table is created if it does not exist, then rows are
bulk-inserted in batches. Re-importing the same dataset is safe: rows are
replaced by identifier rather than duplicated.

Examples:
  moneymap import transactions.json --db "user:pass@tcp(localhost:3306)/finance"
  moneymap import transactions.csv --db "user:pass@tcp(localhost:3306)/finance" --batch-size 1000`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("db", "", "database connection string (required)")
	importCmd.Flags().Int("batch-size", 500, "rows per INSERT statement")
	importCmd.Flags().Int("db-max-open", 25, "max open database connections")
	importCmd.Flags().Int("db-max-idle", 5, "max idle database connections")

	importCmd.MarkFlagRequired("db")

	viper.BindPFlag("database.dsn", importCmd.Flags().Lookup("db"))
	viper.BindPFlag("database.batch_size", importCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("database.max_open_conns", importCmd.Flags().Lookup("db-max-open"))
	viper.BindPFlag("database.max_idle_conns", importCmd.Flags().Lookup("db-max-idle"))
}

func runImport(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	_, txns, err := generator.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("MoneyMap Database Import"))
	fmt.Println()
	fmt.Println(u.KeyValue("Source", args[0]))
	fmt.Println(u.KeyValue("Records", fmt.Sprintf("%d", len(txns))))
	fmt.Println(u.KeyValue("Batch size", fmt.Sprintf("%d", cfg.Database.BatchSize)))
	fmt.Println()

	pool, err := database.NewPool(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	spin := u.NewSpinner("Connecting to database")
	spin.Start()
	if err := pool.Connect(ctx); err != nil {
		spin.Error(err.Error())
		os.Exit(1)
	}
	if err := pool.CreateSchema(ctx); err != nil {
		spin.Error(err.Error())
		os.Exit(1)
	}
	spin.Success("schema ready")

	bar := u.NewProgressBar("Importing", len(txns))
	inserted := 0
	for start := 0; start < len(txns); start += cfg.Database.BatchSize {
		end := start + cfg.Database.BatchSize
		if end > len(txns) {
			end = len(txns)
		}
		n, err := pool.InsertTransactions(ctx, txns[start:end], cfg.Database.BatchSize)
		if err != nil {
			bar.Fail(err)
			os.Exit(1)
		}
		inserted += n
		bar.Update(inserted)
	}
	bar.Complete()

	total, err := pool.CountTransactions(ctx)
	if err == nil {
		fmt.Println()
		fmt.Println(u.KeyValue("Table rows", fmt.Sprintf("%d", total)))
	}

	fmt.Println()
	fmt.Println(u.Success(fmt.Sprintf("Imported %d transactions", inserted)))
}

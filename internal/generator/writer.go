package generator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{
	"id", "date", "amount", "description", "merchant", "category", "kind",
	"account", "recurring", "subscription", "suspicious", "suspicious_type",
	"suspicion_reason", "parent_id",
}

// Dataset bundles a profile with its transaction history for JSON export,
// so a single file round-trips everything an extend run needs.
type Dataset struct {
	Profile      *models.LifestyleProfile `json:"profile,omitempty"`
	Transactions []models.Transaction     `json:"transactions"`
}

// WriteFile writes transactions (and, for JSON, the profile) to path,
// picking the format from the extension: .json or .csv.
func WriteFile(path string, profile *models.LifestyleProfile, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Dataset{Profile: profile, Transactions: txns}); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	case ".csv":
		if err := writeCSV(f, txns); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported output format %q (use .csv or .json)", filepath.Ext(path))
	}
	return nil
}

// ReadFile loads a previously exported dataset. CSV files carry no
// profile, so the returned profile is nil for them.
func ReadFile(path string) (*models.LifestyleProfile, []models.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var ds Dataset
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return ds.Profile, ds.Transactions, nil
	case ".csv":
		txns, err := readCSV(data)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil, txns, nil
	default:
		return nil, nil, fmt.Errorf("unsupported input format %q (use .csv or .json)", filepath.Ext(path))
	}
}

func writeCSV(f *os.File, txns []models.Transaction) error {
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for i := range txns {
		t := &txns[i]
		record := []string{
			t.ID,
			t.Date.Format(dateLayout),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
			t.Merchant,
			t.Category,
			string(t.Kind),
			t.Account,
			strconv.FormatBool(t.Recurring),
			strconv.FormatBool(t.Subscription),
			strconv.FormatBool(t.Suspicious),
			string(t.SuspiciousType),
			t.SuspicionReason,
			t.ParentID,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(data []byte) ([]models.Transaction, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if len(rows[0]) != len(csvHeader) || rows[0][0] != "id" {
		return nil, fmt.Errorf("unrecognized header row")
	}

	txns := make([]models.Transaction, 0, len(rows)-1)
	for n, row := range rows[1:] {
		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", n+2, row[1], err)
		}
		amount, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad amount %q: %w", n+2, row[2], err)
		}
		txns = append(txns, models.Transaction{
			ID:              row[0],
			Date:            date,
			Amount:          amount,
			Description:     row[3],
			Merchant:        row[4],
			Category:        row[5],
			Kind:            models.TxKind(row[6]),
			Account:         row[7],
			Recurring:       row[8] == "true",
			Subscription:    row[9] == "true",
			Suspicious:      row[10] == "true",
			SuspiciousType:  models.SuspiciousType(row[11]),
			SuspicionReason: row[12],
			ParentID:        row[13],
		})
	}
	return txns, nil
}

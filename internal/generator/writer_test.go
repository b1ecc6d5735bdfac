package generator

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
)

func sampleDataset() []models.Transaction {
	return []models.Transaction{
		{
			ID:           "ab12-4cs000",
			Date:         time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
			Amount:       -15.49,
			Description:  "Recurring - Netflix",
			Merchant:     "Netflix",
			Category:     "streaming",
			Kind:         models.TxKindSubscription,
			Account:      "First National",
			Subscription: true,
		},
		{
			ID:          "ab12-4ci000",
			Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Amount:      1740.25,
			Description: "Direct Deposit - Payroll",
			Merchant:    "Payroll",
			Category:    "income",
			Kind:        models.TxKindIncome,
			Account:     "First National",
		},
		{
			ID:              "ab12-4ca000",
			Date:            time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
			Amount:          -15.49,
			Description:     "Recurring - Netflix",
			Merchant:        "Netflix",
			Category:        "streaming",
			Kind:            models.TxKindSubscription,
			Account:         "First National",
			Subscription:    true,
			Suspicious:      true,
			SuspiciousType:  models.SuspiciousDuplicate,
			SuspicionReason: "charged $15.49 again only 2 days after the previous charge",
			ParentID:        "ab12-4cs000",
		},
	}
}

func TestWriteReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txns.csv")
	want := sampleDataset()

	if err := WriteFile(path, nil, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if !reflect.DeepEqual(want, got) {
		t.Errorf("CSV round trip changed the dataset:\n want %+v\n got  %+v", want, got)
	}
}

func TestWriteReadJSONWithProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txns.json")
	want := sampleDataset()
	p := &models.LifestyleProfile{ID: "round trip", PrimaryBank: "First National"}

	if err := WriteFile(path, p, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	gotProfile, got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if gotProfile == nil || gotProfile.ID != p.ID || gotProfile.PrimaryBank != p.PrimaryBank {
		t.Errorf("profile did not survive the round trip: %+v", gotProfile)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("JSON round trip changed the dataset:\n want %+v\n got  %+v", want, got)
	}
}

func TestWriteFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txns.parquet")
	if err := WriteFile(path, nil, sampleDataset()); err == nil {
		t.Fatal("want an error for unsupported extensions")
	}
}

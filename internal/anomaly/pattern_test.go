package anomaly

import (
	"testing"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
)

func charge(merchant string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		Merchant: merchant,
		Amount:   -amount,
		Date:     date,
		Kind:     models.TxKindSubscription,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAnalyzePatternNeedsTwoCharges(t *testing.T) {
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		// A refund is an inflow and does not count as a charge.
		{Merchant: "Netflix", Amount: 15.49, Date: day(2024, time.January, 20)},
	}

	if pat := AnalyzePattern(txns, "Netflix"); pat != nil {
		t.Errorf("one charge should yield no pattern, got %+v", pat)
	}
	if pat := AnalyzePattern(txns, "Spotify"); pat != nil {
		t.Errorf("unknown merchant should yield no pattern, got %+v", pat)
	}
}

func TestAnalyzePatternDefaults(t *testing.T) {
	// Two charges make exactly one gap: not enough to vote on an
	// interval, so the 30-day default applies.
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		charge("Netflix", 15.49, day(2024, time.February, 14)),
	}

	pat := AnalyzePattern(txns, "Netflix")
	if pat == nil {
		t.Fatal("expected a pattern for two charges")
	}
	if pat.IntervalDays != 30 {
		t.Errorf("IntervalDays = %d, want default 30", pat.IntervalDays)
	}
	if len(pat.NormalAmounts) != 1 || pat.NormalAmounts[0] != 15.49 {
		t.Errorf("NormalAmounts = %v, want [15.49]", pat.NormalAmounts)
	}
}

func TestAnalyzePatternModalInterval(t *testing.T) {
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		charge("Netflix", 15.49, day(2024, time.February, 14)),
		charge("Netflix", 15.49, day(2024, time.March, 15)),
		charge("Netflix", 15.49, day(2024, time.April, 14)),
	}

	pat := AnalyzePattern(txns, "Netflix")
	if pat == nil {
		t.Fatal("expected a pattern")
	}
	// Gaps of 30, 30, 30 days all round to the 28-day bucket.
	if pat.IntervalDays != 28 {
		t.Errorf("IntervalDays = %d, want 28", pat.IntervalDays)
	}
	if pat.BillingDay != 15 && pat.BillingDay != 14 {
		t.Errorf("BillingDay = %d, want 14 or 15", pat.BillingDay)
	}
}

func TestAnalyzePatternRecurringAmountsOnly(t *testing.T) {
	txns := []models.Transaction{
		charge("Gym", 29.99, day(2024, time.January, 3)),
		charge("Gym", 29.99, day(2024, time.February, 3)),
		charge("Gym", 45.00, day(2024, time.February, 20)),
		charge("Gym", 29.99, day(2024, time.March, 3)),
	}

	pat := AnalyzePattern(txns, "Gym")
	if pat == nil {
		t.Fatal("expected a pattern")
	}
	if len(pat.NormalAmounts) != 1 || pat.NormalAmounts[0] != 29.99 {
		t.Errorf("NormalAmounts = %v, want only the recurring 29.99", pat.NormalAmounts)
	}
	if pat.BillingDay != 3 {
		t.Errorf("BillingDay = %d, want modal day 3", pat.BillingDay)
	}
}

func TestAnalyzePatternDistinctFallback(t *testing.T) {
	// Nothing recurs; every observed amount counts as normal so a
	// merchant with two plans does not flag its own second plan.
	txns := []models.Transaction{
		charge("Storage Co", 9.99, day(2024, time.January, 8)),
		charge("Storage Co", 19.99, day(2024, time.February, 8)),
	}

	pat := AnalyzePattern(txns, "Storage Co")
	if pat == nil {
		t.Fatal("expected a pattern")
	}
	if len(pat.NormalAmounts) != 2 {
		t.Errorf("NormalAmounts = %v, want both distinct amounts", pat.NormalAmounts)
	}
	if pat.NormalAmounts[0] != 9.99 || pat.NormalAmounts[1] != 19.99 {
		t.Errorf("NormalAmounts = %v, want sorted [9.99 19.99]", pat.NormalAmounts)
	}
}

func TestMaxNormalAmount(t *testing.T) {
	pat := &models.MerchantPattern{NormalAmounts: []float64{7.99, 15.49, 22.99}}
	if got := pat.MaxNormalAmount(); got != 22.99 {
		t.Errorf("MaxNormalAmount = %v, want 22.99", got)
	}
}

package anomaly

import (
	"fmt"
	"testing"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// subscriptionHistory builds months of clean recurring charges for the
// given merchants, one charge per merchant per month.
func subscriptionHistory(merchants []string, months int) []models.Transaction {
	var txns []models.Transaction
	for m := 0; m < months; m++ {
		for i, merchant := range merchants {
			date := time.Date(2024, time.January, 5+i, 0, 0, 0, 0, time.UTC).AddDate(0, m, 0)
			tx := charge(merchant, 9.99+float64(i), date)
			tx.ID = fmt.Sprintf("%s-%d", merchant, m)
			tx.Subscription = true
			txns = append(txns, tx)
		}
	}
	return txns
}

func testIDMinter() func(time.Time) string {
	n := 0
	return func(date time.Time) string {
		n++
		return fmt.Sprintf("planted-%03d", n)
	}
}

func TestInjectPlantsOneOfEachType(t *testing.T) {
	merchants := []string{"Netflix", "Spotify", "Dropbox", "Hulu"}
	txns := subscriptionHistory(merchants, 6)
	before := len(txns)

	in := NewInjector(utils.NewRandom(1234), testIDMinter(), 3, 3)
	out := in.Inject(txns, time.Time{})

	seen := make(map[models.SuspiciousType]int)
	flaggedMerchants := make(map[string]bool)
	for _, tx := range out {
		if !tx.Suspicious {
			continue
		}
		seen[tx.SuspiciousType]++
		if flaggedMerchants[tx.Merchant] {
			t.Errorf("merchant %s received more than one anomaly", tx.Merchant)
		}
		flaggedMerchants[tx.Merchant] = true
		if tx.SuspicionReason == "" {
			t.Errorf("planted record %s has no reason", tx.ID)
		}
	}

	for _, typ := range []models.SuspiciousType{models.SuspiciousDuplicate, models.SuspiciousOvercharge, models.SuspiciousUnexpected} {
		if seen[typ] != 1 {
			t.Errorf("type %s planted %d times, want exactly 1 (got %v)", typ, seen[typ], seen)
		}
	}

	// A duplicate and an unexpected charge append; an overcharge mutates.
	if len(out) != before+2 {
		t.Errorf("record count %d, want %d", len(out), before+2)
	}
}

func TestInjectCountWithinBounds(t *testing.T) {
	merchants := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	for seed := uint32(1); seed <= 20; seed++ {
		txns := subscriptionHistory(merchants, 4)
		in := NewInjector(utils.NewRandom(seed), testIDMinter(), 2, 6)
		out := in.Inject(txns, time.Time{})

		flagged := 0
		for _, tx := range out {
			if tx.Suspicious {
				flagged++
			}
		}
		if flagged < 2 || flagged > 6 {
			t.Errorf("seed %d: planted %d anomalies, want 2..6", seed, flagged)
		}
	}
}

func TestInjectDuplicateLinksParent(t *testing.T) {
	txns := subscriptionHistory([]string{"Netflix"}, 3)

	// One candidate merchant and the rotation starts at duplicate.
	in := NewInjector(utils.NewRandom(7), testIDMinter(), 1, 1)
	out := in.Inject(txns, time.Time{})

	var dup *models.Transaction
	for i := range out {
		if out[i].Suspicious {
			dup = &out[i]
		}
	}
	if dup == nil || dup.SuspiciousType != models.SuspiciousDuplicate {
		t.Fatalf("expected one planted duplicate, got %+v", dup)
	}

	var parent *models.Transaction
	for i := range out {
		if out[i].ID == dup.ParentID {
			parent = &out[i]
		}
	}
	if parent == nil {
		t.Fatalf("duplicate parent %q not in dataset", dup.ParentID)
	}
	if parent.Amount != dup.Amount {
		t.Errorf("duplicate amount %v differs from parent %v", dup.Amount, parent.Amount)
	}

	gap := int(dup.Date.Sub(parent.Date).Hours() / 24)
	if gap < 2 || gap > 4 {
		t.Errorf("duplicate planted %d days after parent, want 2..4", gap)
	}
}

func TestInjectOverchargeInflatesInPlace(t *testing.T) {
	merchants := []string{"Netflix", "Spotify"}
	txns := subscriptionHistory(merchants, 3)
	before := len(txns)

	// Two anomalies: rotation yields one duplicate and one overcharge.
	in := NewInjector(utils.NewRandom(42), testIDMinter(), 2, 2)
	out := in.Inject(txns, time.Time{})

	if len(out) != before+1 {
		t.Fatalf("record count %d, want %d (one append, one in-place)", len(out), before+1)
	}

	for _, tx := range out {
		if tx.SuspiciousType != models.SuspiciousOvercharge {
			continue
		}
		base := 9.99
		if tx.Merchant == "Spotify" {
			base = 10.99
		}
		ratio := -tx.Amount / base
		if ratio < 1.095 || ratio > 1.305 {
			t.Errorf("overcharge ratio %.3f, want within [1.10, 1.30]", ratio)
		}
		if tx.ParentID != "" {
			t.Errorf("in-place overcharge should not carry a ParentID: %+v", tx)
		}
	}
}

func TestInjectRespectsSinceBoundary(t *testing.T) {
	txns := subscriptionHistory([]string{"Netflix", "Spotify", "Dropbox"}, 6)
	cutoff := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	snapshot := make(map[string]models.Transaction)
	for _, tx := range txns {
		if tx.Date.Before(cutoff) {
			snapshot[tx.ID] = tx
		}
	}

	in := NewInjector(utils.NewRandom(9), testIDMinter(), 3, 3)
	out := in.Inject(txns, cutoff)

	for _, tx := range out {
		if tx.Suspicious && tx.Date.Before(cutoff) {
			t.Errorf("anomaly planted before the boundary: %+v", tx)
		}
		if orig, ok := snapshot[tx.ID]; ok && orig.Amount != tx.Amount {
			t.Errorf("record %s before the boundary was mutated", tx.ID)
		}
	}
}

func TestInjectNoCandidates(t *testing.T) {
	// Plain spending is never a target; recurring flags are required.
	txns := []models.Transaction{
		charge("Shell", 41.20, day(2024, time.January, 9)),
		charge("Kroger", 83.55, day(2024, time.January, 12)),
	}

	in := NewInjector(utils.NewRandom(3), testIDMinter(), 2, 6)
	out := in.Inject(txns, time.Time{})

	for _, tx := range out {
		if tx.Suspicious {
			t.Errorf("anomaly planted with no recurring merchants: %+v", tx)
		}
	}
	if len(out) != 2 {
		t.Errorf("record count changed: %d", len(out))
	}
}

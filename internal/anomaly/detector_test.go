package anomaly

import (
	"strings"
	"testing"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
)

func TestDetectDuplicateCharge(t *testing.T) {
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		charge("Netflix", 15.49, day(2024, time.February, 14)),
		charge("Netflix", 15.49, day(2024, time.February, 16)),
	}
	txns[0].ID = "t1"
	txns[1].ID = "t2"
	txns[2].ID = "t3"

	out := Detect(txns, time.Time{})

	if out[0].Suspicious || out[1].Suspicious {
		t.Error("on-schedule charges were flagged")
	}
	dup := out[2]
	if !dup.Suspicious || dup.SuspiciousType != models.SuspiciousDuplicate {
		t.Fatalf("charge 2 days after the previous one not flagged as duplicate: %+v", dup)
	}
	if dup.ParentID != "t2" {
		t.Errorf("ParentID = %q, want the most recent same-amount charge t2", dup.ParentID)
	}
	if !strings.Contains(dup.SuspicionReason, "2 days") {
		t.Errorf("reason should cite the actual gap: %q", dup.SuspicionReason)
	}
}

func TestDetectDuplicateWithMinimalHistory(t *testing.T) {
	// Two charges two days apart are enough: the pattern falls back to
	// the 30-day default interval and the second charge still flags.
	txns := []models.Transaction{
		charge("Netflix", 15.99, day(2025, time.January, 12)),
		charge("Netflix", 15.99, day(2025, time.January, 14)),
	}
	txns[0].ID = "first"
	txns[1].ID = "second"

	out := Detect(txns, time.Time{})

	if !out[1].Suspicious || out[1].SuspiciousType != models.SuspiciousDuplicate {
		t.Fatalf("charge 2 days after its twin not flagged: %+v", out[1])
	}
	if out[1].ParentID != "first" {
		t.Errorf("ParentID = %q, want %q", out[1].ParentID, "first")
	}
	if out[0].Suspicious {
		t.Errorf("original charge was flagged: %+v", out[0])
	}
}

func TestDetectOvercharge(t *testing.T) {
	txns := []models.Transaction{
		charge("Spotify", 10.99, day(2024, time.January, 10)),
		charge("Spotify", 10.99, day(2024, time.February, 10)),
		charge("Spotify", 10.99, day(2024, time.March, 10)),
		charge("Spotify", 13.75, day(2024, time.April, 10)),
	}

	out := Detect(txns, time.Time{})

	over := out[3]
	if !over.Suspicious || over.SuspiciousType != models.SuspiciousOvercharge {
		t.Fatalf("inflated charge on the billing day not flagged as overcharge: %+v", over)
	}
	for i := 0; i < 3; i++ {
		if out[i].Suspicious {
			t.Errorf("normal charge %d was flagged: %+v", i, out[i])
		}
	}
}

func TestDetectOverchargeRequiresBillingWindow(t *testing.T) {
	// Same inflated amount but 10 days off the usual billing day: not an
	// overcharge. It has no same-amount sibling either, so it surfaces as
	// an unexpected charge instead.
	txns := []models.Transaction{
		charge("Spotify", 10.99, day(2024, time.January, 10)),
		charge("Spotify", 10.99, day(2024, time.February, 10)),
		charge("Spotify", 10.99, day(2024, time.March, 10)),
		charge("Spotify", 13.75, day(2024, time.April, 20)),
	}

	out := Detect(txns, time.Time{})

	got := out[3]
	if got.SuspiciousType == models.SuspiciousOvercharge {
		t.Fatalf("off-schedule charge wrongly classified as overcharge: %+v", got)
	}
	if !got.Suspicious || got.SuspiciousType != models.SuspiciousUnexpected {
		t.Errorf("off-schedule novel amount should be unexpected: %+v", got)
	}
}

func TestDetectUnexpectedCharge(t *testing.T) {
	txns := []models.Transaction{
		charge("Spotify", 10.99, day(2024, time.January, 10)),
		charge("Spotify", 10.99, day(2024, time.February, 10)),
		charge("Spotify", 4.99, day(2024, time.February, 18)),
		charge("Spotify", 10.99, day(2024, time.March, 10)),
	}

	out := Detect(txns, time.Time{})

	unexp := out[2]
	if !unexp.Suspicious || unexp.SuspiciousType != models.SuspiciousUnexpected {
		t.Fatalf("novel small amount not flagged as unexpected: %+v", unexp)
	}
}

func TestDetectSiblingWithinWindowAbsolves(t *testing.T) {
	// Two near-equal novel amounts a few days apart vouch for each other:
	// neither matches the recurring price, but each has a same-amount
	// sibling inside the three-month window.
	txns := []models.Transaction{
		charge("Spotify", 10.99, day(2024, time.January, 10)),
		charge("Spotify", 10.99, day(2024, time.February, 10)),
		charge("Spotify", 4.99, day(2024, time.February, 16)),
		charge("Spotify", 5.05, day(2024, time.February, 21)),
		charge("Spotify", 10.99, day(2024, time.March, 10)),
	}

	out := Detect(txns, time.Time{})

	for _, i := range []int{2, 3} {
		if out[i].SuspiciousType == models.SuspiciousUnexpected {
			t.Errorf("charge with an in-window sibling flagged as unexpected: %+v", out[i])
		}
	}
}

func TestDetectHonorsSinceBoundary(t *testing.T) {
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		charge("Netflix", 15.49, day(2024, time.February, 14)),
		charge("Netflix", 15.49, day(2024, time.February, 16)),
		charge("Netflix", 15.49, day(2024, time.March, 15)),
		charge("Netflix", 15.49, day(2024, time.March, 18)),
	}

	// Only March is in scope: the February duplicate stays unlabeled but
	// still feeds the pattern, and the March duplicate is caught.
	out := Detect(txns, day(2024, time.March, 1))

	if out[2].Suspicious {
		t.Errorf("record before the scan boundary was labeled: %+v", out[2])
	}
	if !out[4].Suspicious || out[4].SuspiciousType != models.SuspiciousDuplicate {
		t.Errorf("in-scope duplicate not flagged: %+v", out[4])
	}
}

func TestDetectSkipsPreLabeledRecords(t *testing.T) {
	txns := []models.Transaction{
		charge("Netflix", 15.49, day(2024, time.January, 15)),
		charge("Netflix", 15.49, day(2024, time.February, 14)),
		charge("Netflix", 15.49, day(2024, time.February, 16)),
	}
	txns[2].Suspicious = true
	txns[2].SuspiciousType = models.SuspiciousDuplicate
	txns[2].SuspicionReason = "planted"

	out := Detect(txns, time.Time{})

	if out[2].SuspicionReason != "planted" {
		t.Errorf("pre-labeled record was rewritten: %+v", out[2])
	}
}

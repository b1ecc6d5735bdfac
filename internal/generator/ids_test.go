package generator

import (
	"strings"
	"testing"
	"time"
)

func TestMakeIDLayout(t *testing.T) {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	id := MakeID("jane doe 2024", date, PhaseSubscription, 7)

	if len(id) != 11 {
		t.Fatalf("MakeID length = %d, want 11 (%q)", len(id), id)
	}
	if id[4] != '-' {
		t.Errorf("MakeID %q: want separator at index 4", id)
	}
	if id[7] != byte(PhaseSubscription) {
		t.Errorf("MakeID %q: phase char = %c, want %c", id, id[7], PhaseSubscription)
	}

	// March 2024 is 50 months after Jan 2020; 50 in base 36 is "1e".
	if id[5:7] != "1e" {
		t.Errorf("MakeID %q: epoch month = %q, want %q", id, id[5:7], "1e")
	}
	if id[8:] != "007" {
		t.Errorf("MakeID %q: sequence = %q, want %q", id, id[8:], "007")
	}
}

func TestMakeIDEpochStart(t *testing.T) {
	date := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	id := MakeID("seed", date, PhaseRecurring, 0)

	if id[5:7] != "00" {
		t.Errorf("Jan 2020 epoch month = %q, want %q (id %q)", id[5:7], "00", id)
	}
}

func TestMakeIDPrefixStablePerProfile(t *testing.T) {
	d1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	a := MakeID("profile-a", d1, PhaseFee, 0)
	b := MakeID("profile-a", d2, PhaseIncome, 41)
	if a[:5] != b[:5] {
		t.Errorf("same profile produced different prefixes: %q vs %q", a, b)
	}

	c := MakeID("profile-b", d1, PhaseFee, 0)
	if a[:4] == c[:4] {
		t.Errorf("distinct profiles produced the same prefix: %q vs %q", a, c)
	}
}

func TestMakeIDUniqueWithinMonth(t *testing.T) {
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)

	for _, phase := range []Phase{PhaseRecurring, PhaseSubscription, PhaseIncome, PhaseVariable, PhaseTransfer, PhaseFee, PhaseAnomaly} {
		for seq := 0; seq < 50; seq++ {
			id := MakeID("collision-check", date, phase, seq)
			if seen[id] {
				t.Fatalf("duplicate identifier %q", id)
			}
			seen[id] = true
		}
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("Netflix", 15.49, 14)
	b := Fingerprint("netflix", 15.49, 14)
	if a != b {
		t.Errorf("fingerprint should be case-insensitive on merchant: %q vs %q", a, b)
	}
	if len(a) != 6 {
		t.Errorf("fingerprint length = %d, want 6", len(a))
	}
	if strings.Contains(a, "-") {
		t.Errorf("fingerprint %q should be bare base36", a)
	}

	c := Fingerprint("Netflix", 15.49, 15)
	if a == c {
		t.Errorf("different day produced identical fingerprint %q", a)
	}
}

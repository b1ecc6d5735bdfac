package data

import "testing"

func TestLoad(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	again, err := Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if catalog != again {
		t.Error("Load should return the same parsed catalog")
	}

	if len(catalog.Banks) < 2 {
		t.Errorf("banks = %d, want at least 2 for primary/secondary assignment", len(catalog.Banks))
	}
	if catalog.SalaryBand.Min <= 0 || catalog.SalaryBand.Max <= catalog.SalaryBand.Min {
		t.Errorf("invalid salary band %+v", catalog.SalaryBand)
	}
}

func TestSubscriptionPools(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	for _, category := range []string{"streaming", "music", "cloud", "gym", "software"} {
		if len(catalog.SubscriptionPool(category)) == 0 {
			t.Errorf("subscription pool %q is empty", category)
		}
	}
	if got := catalog.SubscriptionPool("unknown"); got != nil {
		t.Errorf("unknown pool = %v, want nil", got)
	}
}

func TestSpendPools(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	for _, category := range []string{"grocery", "dining", "fuel", "rideshare", "retail", "online", "unclassified"} {
		if len(catalog.SpendPool(category)) == 0 {
			t.Errorf("spend pool %q is empty", category)
		}
	}
}

func TestPricesFor(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	prices, ok := catalog.PricesFor("Netflix")
	if !ok || len(prices) == 0 {
		t.Fatal("Netflix should have published plan prices")
	}
	for _, price := range prices {
		if price <= 0 {
			t.Errorf("non-positive published price %v", price)
		}
	}

	if _, ok := catalog.PricesFor("No Such Service"); ok {
		t.Error("unknown merchant should have no published prices")
	}
}

func TestFees(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	names := catalog.FeeNames()
	if len(names) < 6 {
		t.Fatalf("fee palette source has %d entries, want at least 6 to sample from", len(names))
	}
	for _, name := range names {
		if catalog.FeeAmount(name) <= 0 {
			t.Errorf("fee %q has non-positive base amount", name)
		}
	}
	if catalog.FeeAmount("no such fee") != 0 {
		t.Error("unknown fee should report a zero amount")
	}
}

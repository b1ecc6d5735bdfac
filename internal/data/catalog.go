// Package data holds the curated static merchant catalog the generator
// draws from: bank and merchant names, subscription list prices, daily-spend
// pools, and the fee palette. The catalog is embedded in the binary and is
// versioned; it must stay stable for datasets to reproduce across runs.
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed catalog.json
var catalogFiles embed.FS

// Catalog is the read-only reference data supplied to the profile builder
// and transaction engine.
type Catalog struct {
	Version int `json:"version"`

	Banks            []string `json:"banks"`
	Wallets          []string `json:"wallets"`
	CardIssuers      []string `json:"card_issuers"`
	InvestmentVenues []string `json:"investment_venues"`

	Housing struct {
		Landlords       []string `json:"landlords"`
		MortgageLenders []string `json:"mortgage_lenders"`
	} `json:"housing"`

	Utilities         []string `json:"utilities"`
	PhoneCarriers     []string `json:"phone_carriers"`
	InternetProviders []string `json:"internet_providers"`

	Insurers struct {
		Auto   []string `json:"auto"`
		Health []string `json:"health"`
		Home   []string `json:"home"`
		Life   []string `json:"life"`
	} `json:"insurers"`

	Lenders struct {
		Auto     []string `json:"auto"`
		Student  []string `json:"student"`
		Personal []string `json:"personal"`
	} `json:"lenders"`

	// Subscriptions maps category name to merchant pool.
	Subscriptions map[string][]string `json:"subscriptions"`

	// ListPrices maps merchant name to its published plan prices.
	ListPrices map[string][]float64 `json:"list_prices"`

	// Pools maps daily-spend category to merchant pool.
	Pools map[string][]string `json:"pools"`

	Fees []FeeEntry `json:"fees"`

	SalaryBand struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"salary_band"`

	Delivery []string `json:"delivery"`
}

// FeeEntry is one fee type with its typical base amount.
type FeeEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

var (
	instance *Catalog
	once     sync.Once
	loadErr  error
)

// Load parses the embedded catalog. Thread-safe; parses once per process.
func Load() (*Catalog, error) {
	once.Do(func() {
		instance = &Catalog{}
		loadErr = instance.load()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (c *Catalog) load() error {
	raw, err := catalogFiles.ReadFile("catalog.json")
	if err != nil {
		return fmt.Errorf("failed to read catalog.json: %w", err)
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse catalog.json: %w", err)
	}
	return c.validate()
}

// validate checks that every pool the builder draws from is populated.
// A missing pool would silently skew draw order, so fail loudly at load.
func (c *Catalog) validate() error {
	required := map[string]int{
		"banks":             len(c.Banks),
		"wallets":           len(c.Wallets),
		"card_issuers":      len(c.CardIssuers),
		"investment_venues": len(c.InvestmentVenues),
		"landlords":         len(c.Housing.Landlords),
		"mortgage_lenders":  len(c.Housing.MortgageLenders),
		"utilities":         len(c.Utilities),
		"phone_carriers":    len(c.PhoneCarriers),
		"internet_providers": len(c.InternetProviders),
		"fees":              len(c.Fees),
	}
	for name, n := range required {
		if n == 0 {
			return fmt.Errorf("catalog: pool %q is empty", name)
		}
	}
	for _, cat := range []string{"streaming", "music", "cloud", "gym", "software"} {
		if len(c.Subscriptions[cat]) == 0 {
			return fmt.Errorf("catalog: subscription category %q is empty", cat)
		}
	}
	for _, cat := range []string{"grocery", "dining", "fuel", "rideshare", "retail", "online", "unclassified"} {
		if len(c.Pools[cat]) == 0 {
			return fmt.Errorf("catalog: spend pool %q is empty", cat)
		}
	}
	if c.SalaryBand.Min <= 0 || c.SalaryBand.Max <= c.SalaryBand.Min {
		return fmt.Errorf("catalog: invalid salary band [%f, %f]", c.SalaryBand.Min, c.SalaryBand.Max)
	}
	return nil
}

// SubscriptionPool returns the merchant pool for a subscription category.
func (c *Catalog) SubscriptionPool(category string) []string {
	return c.Subscriptions[category]
}

// PricesFor returns the published plan prices for a merchant. The second
// return is false for merchants without a price table entry, in which case
// the builder falls back to a randomized price.
func (c *Catalog) PricesFor(merchant string) ([]float64, bool) {
	prices, ok := c.ListPrices[merchant]
	return prices, ok && len(prices) > 0
}

// SpendPool returns the merchant pool for a daily-spend category.
func (c *Catalog) SpendPool(category string) []string {
	return c.Pools[category]
}

// FeeNames returns the names of every fee type in the palette.
func (c *Catalog) FeeNames() []string {
	names := make([]string, len(c.Fees))
	for i, f := range c.Fees {
		names[i] = f.Name
	}
	return names
}

// FeeAmount returns the base amount for a fee type name, or 0 if unknown.
func (c *Catalog) FeeAmount(name string) float64 {
	for _, f := range c.Fees {
		if f.Name == name {
			return f.Amount
		}
	}
	return 0
}

package models

import "time"

// HousingType is rent or mortgage, never both.
type HousingType string

const (
	HousingRent     HousingType = "rent"
	HousingMortgage HousingType = "mortgage"
)

// SubscriptionPlan is one recurring plan the persona pays for: a merchant,
// a fixed monthly price, and the day of month it bills.
type SubscriptionPlan struct {
	Category   string  `json:"category"`
	Merchant   string  `json:"merchant"`
	Amount     float64 `json:"amount"`
	BillingDay int     `json:"billing_day"`
}

// FeeType is one entry of the persona's fixed fee palette. The base amount
// is jittered per occurrence, the name never changes.
type FeeType struct {
	Name       string  `json:"name"`
	BaseAmount float64 `json:"base_amount"`
}

// MerchantPools holds the persona's day-to-day merchant assignments, one
// pool per variable-spending category.
type MerchantPools struct {
	Grocery      []string `json:"grocery"`
	Dining       []string `json:"dining"`
	Fuel         []string `json:"fuel"`
	Rideshare    []string `json:"rideshare"`
	Retail       []string `json:"retail"`
	Online       []string `json:"online"`
	Unclassified []string `json:"unclassified"`
}

// LifestyleProfile is a fully materialized persona: every bank, merchant,
// plan, price, and pool the transaction engine will ever reference for one
// profile seed. It is built in a single pass over the seeded random source
// and is immutable afterward; the same seed always yields the same profile.
//
// Every cardinality (2-5 utilities, 2-6 software plans, and so on) is drawn
// once at build time from a closed range and never changes.
type LifestyleProfile struct {
	// ID is the profile seed string the persona was derived from.
	ID string `json:"id"`

	// CreatedAt is caller-supplied metadata; the builder leaves it zero so
	// that profile construction stays a pure function of the seed.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Accounts.
	PrimaryBank   string   `json:"primary_bank"`
	SecondaryBank string   `json:"secondary_bank"`
	Wallets       []string `json:"wallets"`
	CreditCards   []string `json:"credit_cards"`
	Investments   []string `json:"investments"`

	// Housing: exactly one of rent or mortgage, with its provider.
	HousingType     HousingType `json:"housing_type"`
	HousingProvider string      `json:"housing_provider"`

	// Monthly bills.
	Utilities        []string `json:"utilities"`
	PhoneCarrier     string   `json:"phone_carrier"`
	InternetProvider string   `json:"internet_provider"`

	// Insurance; LifeInsurer is empty when the persona carries none.
	AutoInsurer   string `json:"auto_insurer"`
	HealthInsurer string `json:"health_insurer"`
	HomeInsurer   string `json:"home_insurer"`
	LifeInsurer   string `json:"life_insurer,omitempty"`

	// Loans; lender fields are empty when the loan is absent.
	CarLoanLender     string   `json:"car_loan_lender,omitempty"`
	StudentLoanLender string   `json:"student_loan_lender,omitempty"`
	OtherLoans        []string `json:"other_loans,omitempty"`

	// Subscription plans across all categories, each with a fixed monthly
	// amount and billing day.
	Subscriptions []SubscriptionPlan `json:"subscriptions"`

	// Day-to-day merchant pools.
	Pools MerchantPools `json:"pools"`

	// Fee palette, sampled once for the profile's lifetime.
	FeeTypes []FeeType `json:"fee_types"`
}

// SubscriptionsByCategory groups the persona's plans for reporting.
func (p *LifestyleProfile) SubscriptionsByCategory() map[string][]SubscriptionPlan {
	out := make(map[string][]SubscriptionPlan)
	for _, sub := range p.Subscriptions {
		out[sub.Category] = append(out[sub.Category], sub)
	}
	return out
}

// MonthlySubscriptionTotal sums the persona's fixed plan prices.
func (p *LifestyleProfile) MonthlySubscriptionTotal() float64 {
	var total float64
	for _, sub := range p.Subscriptions {
		total += sub.Amount
	}
	return total
}

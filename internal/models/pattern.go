package models

// MerchantPattern is the statistical "normal" profile derived for one
// merchant from transaction history. It is ephemeral: recomputed on demand
// by the analyzer and never persisted.
type MerchantPattern struct {
	Merchant string

	// NormalAmounts holds the amounts seen at least twice for the merchant.
	// When nothing recurs it falls back to all distinct amounts, which keeps
	// a merchant with two simultaneous billing plans from flagging its own
	// second plan.
	NormalAmounts []float64

	// IntervalDays is the modal gap between consecutive charges, rounded to
	// the nearest 7-day bucket. Defaults to 30 when fewer than two charges
	// exist to measure.
	IntervalDays int

	// BillingDay is the modal day-of-month of charges. Defaults to 15.
	BillingDay int
}

// MaxNormalAmount returns the largest known normal amount, or 0 when the
// pattern has none.
func (p *MerchantPattern) MaxNormalAmount() float64 {
	var max float64
	for _, a := range p.NormalAmounts {
		if a > max {
			max = a
		}
	}
	return max
}

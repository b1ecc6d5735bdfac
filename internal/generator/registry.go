package generator

import (
	"math"
	"strings"

	"github.com/Nebulazer123/moneymap/internal/models"
)

// StableAmountRegistry memoizes the first amount generated for each
// recurring charge key so a bill or subscription never silently changes
// price within one generation run. Keys are (category, merchant, optional
// plan discriminator).
//
// The registry is owned by a single Generate call and threaded through the
// month stages explicitly; concurrent generations for different profiles
// never share one.
type StableAmountRegistry struct {
	amounts map[string]float64
}

// NewStableAmountRegistry creates an empty registry.
func NewStableAmountRegistry() *StableAmountRegistry {
	return &StableAmountRegistry{amounts: make(map[string]float64)}
}

func amountKey(category, merchant, plan string) string {
	return strings.ToLower(category) + "|" + strings.ToLower(merchant) + "|" + plan
}

// Amount returns the memoized amount for the key, drawing it with draw and
// recording it on first use. draw is only invoked on a miss, which keeps
// the random sequence identical whether the amount came from this run or
// from prior history.
func (r *StableAmountRegistry) Amount(category, merchant, plan string, draw func() float64) float64 {
	key := amountKey(category, merchant, plan)
	if amount, ok := r.amounts[key]; ok {
		return amount
	}
	amount := draw()
	r.amounts[key] = amount
	return amount
}

// SeedFromHistory preloads the registry from previously generated records
// so that extend-mode months reuse the amounts the original run settled on.
// Suspicious records are skipped: an injected overcharge no longer carries
// the merchant's true price.
func (r *StableAmountRegistry) SeedFromHistory(txns []models.Transaction) {
	for _, t := range txns {
		if t.Suspicious || (!t.Recurring && !t.Subscription) {
			continue
		}
		key := amountKey(t.Category, t.Merchant, "")
		if _, ok := r.amounts[key]; !ok {
			r.amounts[key] = math.Abs(t.Amount)
		}
	}
}

// Len returns the number of memoized amounts.
func (r *StableAmountRegistry) Len() int {
	return len(r.amounts)
}

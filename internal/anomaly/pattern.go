// Package anomaly derives per-merchant billing patterns from transaction
// history and uses them two ways: an injector that deliberately seeds a
// bounded number of realistic billing anomalies into a generated dataset,
// and a detector that re-scans the full dataset and labels every charge
// that deviates from its merchant's pattern, whether injected or organic.
package anomaly

import (
	"math"
	"sort"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
)

// Pattern defaults when history is too thin to measure.
const (
	defaultIntervalDays = 30
	defaultBillingDay   = 15
)

// dayWindow is the forgiveness applied around expected billing timing:
// a charge within 3 days of the modal billing day counts as on-schedule,
// and a repeat within (interval - 3) days counts as early.
const dayWindow = 3

// AnalyzePattern derives the statistical "normal" for one merchant from
// the full transaction history: its recurring amounts, its modal charge
// interval rounded to the nearest 7-day bucket, and its modal billing day.
// Returns nil when fewer than two charges exist for the merchant; the
// classifiers treat that as "no opinion".
//
// txns must be sorted by date.
func AnalyzePattern(txns []models.Transaction, merchant string) *models.MerchantPattern {
	charges := merchantCharges(txns, merchant)
	if len(charges) < 2 {
		return nil
	}

	return &models.MerchantPattern{
		Merchant:      merchant,
		NormalAmounts: normalAmounts(charges),
		IntervalDays:  modalInterval(charges),
		BillingDay:    modalBillingDay(charges),
	}
}

// merchantCharges collects the merchant's outgoing charges in date order.
// Inflows (refunds, income) do not shape a billing pattern.
func merchantCharges(txns []models.Transaction, merchant string) []models.Transaction {
	var out []models.Transaction
	for i := range txns {
		if txns[i].Merchant == merchant && txns[i].Amount < 0 {
			out = append(out, txns[i])
		}
	}
	return out
}

// normalAmounts returns the amounts that recur at least twice, falling
// back to all distinct amounts when nothing recurs. The fallback keeps a
// merchant with two simultaneous plans from flagging its own second plan.
func normalAmounts(charges []models.Transaction) []float64 {
	counts := make(map[int64]int)
	for i := range charges {
		counts[toCents(-charges[i].Amount)]++
	}

	var recurring, distinct []float64
	for cents, n := range counts {
		amount := float64(cents) / 100
		distinct = append(distinct, amount)
		if n >= 2 {
			recurring = append(recurring, amount)
		}
	}

	out := recurring
	if len(out) == 0 {
		out = distinct
	}
	sort.Float64s(out)
	return out
}

// modalInterval computes the most common gap between consecutive charges,
// rounded to the nearest 7-day bucket. With fewer than two gaps to vote
// there is no mode and the default of 30 applies.
//
// Only consecutive-pair gaps participate, so a skipped month shifts the
// baseline; that is a known approximation carried over deliberately.
func modalInterval(charges []models.Transaction) int {
	var buckets []int
	for i := 1; i < len(charges); i++ {
		gap := daysBetween(charges[i-1].Date, charges[i].Date)
		buckets = append(buckets, int(math.Round(float64(gap)/7))*7)
	}
	if len(buckets) < 2 {
		return defaultIntervalDays
	}
	return modeOf(buckets, defaultIntervalDays)
}

func modalBillingDay(charges []models.Transaction) int {
	var days []int
	for i := range charges {
		days = append(days, charges[i].Date.Day())
	}
	return modeOf(days, defaultBillingDay)
}

// modeOf returns the most frequent value, breaking ties toward the
// largest. Duplicate charges produce spurious near-zero gaps, so on a
// tie the longer interval is the trustworthy one.
func modeOf(values []int, fallback int) int {
	if len(values) == 0 {
		return fallback
	}
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := fallback, 0
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if counts[k] >= bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

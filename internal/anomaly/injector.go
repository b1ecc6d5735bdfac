package anomaly

import (
	"fmt"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// Injector plants a bounded number of deliberate billing anomalies into a
// generated dataset so the resulting history always contains something
// worth finding. Every planted record is labeled at creation time; the
// detector confirms them on the re-scan rather than discovering them.
type Injector struct {
	rng      *utils.Random
	newID    func(date time.Time) string
	countMin int
	countMax int
}

// NewInjector returns an injector drawing from rng. newID mints an ID for
// a planted record dated at the given time; the caller owns sequencing.
func NewInjector(rng *utils.Random, newID func(date time.Time) string, countMin, countMax int) *Injector {
	return &Injector{rng: rng, newID: newID, countMin: countMin, countMax: countMax}
}

// Inject picks distinct recurring merchants with activity on or after
// since and plants one anomaly per merchant, rotating through the three
// anomaly types so any run planting three or more covers every type.
// Records dated before since are never created or modified.
//
// txns must be sorted by date. Inject returns a slice that may contain
// appended records; the caller re-sorts.
func (in *Injector) Inject(txns []models.Transaction, since time.Time) []models.Transaction {
	merchants, occurrences := in.candidates(txns, since)
	if len(merchants) == 0 {
		return txns
	}

	target := in.rng.IntRange(in.countMin, in.countMax)
	shuffled := in.rng.ShuffleStrings(merchants)
	if target > len(shuffled) {
		target = len(shuffled)
	}

	rotation := []models.SuspiciousType{
		models.SuspiciousDuplicate,
		models.SuspiciousOvercharge,
		models.SuspiciousUnexpected,
	}
	for i := 0; i < target; i++ {
		merchant := shuffled[i]
		indices := occurrences[merchant]
		pick := indices[in.rng.IntN(len(indices))]

		switch rotation[i%len(rotation)] {
		case models.SuspiciousDuplicate:
			txns = append(txns, in.plantDuplicate(txns[pick]))
		case models.SuspiciousOvercharge:
			txns[pick] = in.plantOvercharge(txns[pick])
		case models.SuspiciousUnexpected:
			txns = append(txns, in.plantUnexpected(txns[pick]))
		}
	}
	return txns
}

// candidates returns recurring-charge merchants with at least one record
// on or after since, in first-appearance order so the shuffle is the only
// source of variation, plus each merchant's eligible record indices.
func (in *Injector) candidates(txns []models.Transaction, since time.Time) ([]string, map[string][]int) {
	var order []string
	occurrences := make(map[string][]int)
	for i := range txns {
		t := &txns[i]
		if t.Amount >= 0 || t.Suspicious || t.Date.Before(since) {
			continue
		}
		if !t.Recurring && !t.Subscription {
			continue
		}
		if _, seen := occurrences[t.Merchant]; !seen {
			order = append(order, t.Merchant)
		}
		occurrences[t.Merchant] = append(occurrences[t.Merchant], i)
	}
	return order, occurrences
}

// plantDuplicate re-bills an existing charge 2 to 4 days later at the
// identical amount, linked to the original through ParentID.
func (in *Injector) plantDuplicate(orig models.Transaction) models.Transaction {
	gap := in.rng.IntRange(2, 4)
	date := orig.Date.AddDate(0, 0, gap)

	dup := orig
	dup.ID = in.newID(date)
	dup.Date = date
	dup.ParentID = orig.ID
	dup.Suspicious = true
	dup.SuspiciousType = models.SuspiciousDuplicate
	dup.SuspicionReason = fmt.Sprintf("charged %s again only %d days after the previous charge",
		utils.FormatUSD(-orig.Amount), gap)
	return dup
}

// plantOvercharge inflates an existing charge in place by 10 to 30
// percent. The record keeps its ID and date so the history reads as the
// merchant simply billing the wrong amount that cycle.
func (in *Injector) plantOvercharge(orig models.Transaction) models.Transaction {
	factor := in.rng.Float64Range(1.10, 1.30)
	inflated := utils.RoundCents(-orig.Amount * factor)

	over := orig
	over.Amount = -inflated
	over.Suspicious = true
	over.SuspiciousType = models.SuspiciousOvercharge
	over.SuspicionReason = fmt.Sprintf("billed %s instead of the usual %s",
		utils.FormatUSD(inflated), utils.FormatUSD(-orig.Amount))
	return over
}

// plantUnexpected adds a small off-schedule charge 5 to 9 days after an
// existing one, at an amount the merchant never normally bills.
func (in *Injector) plantUnexpected(orig models.Transaction) models.Transaction {
	gap := in.rng.IntRange(5, 9)
	date := orig.Date.AddDate(0, 0, gap)

	amount := utils.RoundCents(in.rng.Float64Range(2.99, 9.99))
	if utils.AmountsEqual(amount, -orig.Amount) {
		amount = utils.RoundCents(amount + 2.50)
	}

	extra := orig
	extra.ID = in.newID(date)
	extra.Date = date
	extra.Amount = -amount
	extra.Recurring = false
	extra.Subscription = false
	extra.ParentID = ""
	extra.Suspicious = true
	extra.SuspiciousType = models.SuspiciousUnexpected
	extra.SuspicionReason = fmt.Sprintf("off-schedule %s charge with no matching amount in the billing history",
		utils.FormatUSD(amount))
	return extra
}

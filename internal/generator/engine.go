// Package generator is the transaction engine: it turns a lifestyle
// profile and a calendar range into an ordered, reproducible sequence of
// ledger transactions, then hands the whole sequence to the anomaly engine
// for injection and detection.
package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Nebulazer123/moneymap/internal/anomaly"
	"github.com/Nebulazer123/moneymap/internal/data"
	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// Mode selects how Generate treats prior output.
type Mode string

const (
	// ModeFull generates the whole range from scratch.
	ModeFull Mode = "full"

	// ModeExtend appends months not already covered by the existing
	// dataset; prior records are never re-derived or reordered.
	ModeExtend Mode = "extend"
)

// Engine generates transaction datasets against a fixed catalog.
type Engine struct {
	catalog *data.Catalog

	// Injection target range, [2, 6] unless overridden for tests.
	AnomalyMin int
	AnomalyMax int
}

// New creates an engine bound to the given catalog.
func New(catalog *data.Catalog) *Engine {
	return &Engine{
		catalog:    catalog,
		AnomalyMin: 2,
		AnomalyMax: 6,
	}
}

// Generate produces the transaction sequence for every month of
// [start, end] inclusive, sorted by date and, within a date, by identifier.
//
// Each month runs its stages in a fixed order (recurring bills,
// subscriptions, income, variable spending, transfers, fees); the order is
// a correctness contract because every stage consumes the month's random
// stream. After the full range is generated the anomaly injector and the
// detection pass run over the entire accumulated sequence.
//
// In extend mode, existing must be the output of a prior Generate for the
// same profile; months it already covers are skipped so earlier identifiers
// and amounts survive verbatim, and injection and detection are restricted
// to the newly appended months.
func (e *Engine) Generate(p *models.LifestyleProfile, start, end time.Time, mode Mode, existing []models.Transaction) ([]models.Transaction, error) {
	start = monthStart(start)
	end = monthStart(end)
	if end.Before(start) {
		return nil, fmt.Errorf("generate: end month %s precedes start month %s",
			end.Format("2006-01"), start.Format("2006-01"))
	}
	// Identifier epoch months count from January 2020; earlier months would
	// all render as epoch month zero and collide.
	if start.Year() < epochYear {
		return nil, fmt.Errorf("generate: start month %s precedes the %d-01 identifier epoch",
			start.Format("2006-01"), epochYear)
	}

	switch mode {
	case ModeFull:
		if len(existing) > 0 {
			return nil, fmt.Errorf("generate: full mode does not accept an existing dataset (%d records)", len(existing))
		}
	case ModeExtend:
		if err := validateExisting(p, existing); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("generate: unknown mode %q", mode)
	}

	registry := NewStableAmountRegistry()
	registry.SeedFromHistory(existing)
	covered := coveredMonths(existing)

	out := make([]models.Transaction, len(existing))
	copy(out, existing)

	// Everything from the first freshly generated month onward is fair
	// game for injection and detection; prior records stay immutable.
	var mutableFrom time.Time
	generated := false

	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		if covered[monthKey(month)] {
			continue
		}
		if !generated {
			mutableFrom = month
			generated = true
		}
		out = append(out, e.generateMonth(p, month, registry)...)
	}

	if !generated {
		// Nothing new to derive; the dataset already covers the range.
		sortTransactions(out)
		return out, nil
	}

	sortTransactions(out)
	out = e.postProcess(p, out, mutableFrom, end)
	sortTransactions(out)
	return out, nil
}

// generateMonth derives the month seed and runs the six emission stages.
func (e *Engine) generateMonth(p *models.LifestyleProfile, month time.Time, registry *StableAmountRegistry) []models.Transaction {
	seed := utils.HashSeed(fmt.Sprintf("%s-%d-%d", p.ID, month.Year(), int(month.Month())))

	mc := &monthCtx{
		catalog:  e.catalog,
		profile:  p,
		rng:      utils.NewRandom(seed),
		month:    month,
		days:     daysInMonth(month),
		seqs:     make(map[Phase]int),
		registry: registry,
	}

	mc.emitRecurringBills()
	mc.emitSubscriptions()
	mc.emitIncome()
	mc.emitVariableSpending()
	mc.emitTransfers()
	mc.emitFees()

	return mc.out
}

// postProcess runs anomaly injection and the detection pass over the whole
// accumulated sequence. txns must already be date-sorted.
func (e *Engine) postProcess(p *models.LifestyleProfile, txns []models.Transaction, mutableFrom, end time.Time) []models.Transaction {
	injectSeed := utils.HashSeed(fmt.Sprintf("%s-inject-%s-%s", p.ID, monthKey(mutableFrom), monthKey(end)))

	used := make(map[string]bool, len(txns))
	for i := range txns {
		used[txns[i].ID] = true
	}

	// Sequence numbers restart at zero per month; an extend run can meet
	// anomaly identifiers a prior run spilled into its first month, so
	// taken slots are skipped rather than reissued.
	anomalySeqs := make(map[string]int)
	newID := func(date time.Time) string {
		key := monthKey(date)
		for {
			id := MakeID(p.ID, date, PhaseAnomaly, anomalySeqs[key])
			anomalySeqs[key]++
			if !used[id] {
				used[id] = true
				return id
			}
		}
	}

	injector := anomaly.NewInjector(utils.NewRandom(injectSeed), newID, e.AnomalyMin, e.AnomalyMax)
	txns = injector.Inject(txns, mutableFrom)

	sortTransactions(txns)
	return anomaly.Detect(txns, mutableFrom)
}

// validateExisting rejects datasets that were not generated from this
// profile; silently extending foreign data would corrupt both.
func validateExisting(p *models.LifestyleProfile, existing []models.Transaction) error {
	if len(existing) == 0 {
		return nil
	}
	prefix := MakeID(p.ID, time.Date(epochYear, 1, 1, 0, 0, 0, 0, time.UTC), PhaseRecurring, 0)[:4]
	for i := range existing {
		if !strings.HasPrefix(existing[i].ID, prefix+"-") {
			return fmt.Errorf("generate: existing record %q does not belong to profile %q", existing[i].ID, p.ID)
		}
	}
	return nil
}

// coveredMonths reports which months the dataset already contains.
// Injected records can spill a few days past their month; a month whose
// only records are injected ones has not actually been generated yet.
func coveredMonths(txns []models.Transaction) map[string]bool {
	covered := make(map[string]bool)
	for i := range txns {
		if txns[i].Suspicious {
			continue
		}
		covered[monthKey(txns[i].Date)] = true
	}
	return covered
}

// ResumeMonth reports the month after the latest generated month of the
// dataset, for callers picking a default start when extending. Injected
// records can spill a few days past their month and do not count, matching
// coveredMonths; resuming from a spilled record would skip the spillover
// month entirely. ok is false for an empty or all-injected dataset.
func ResumeMonth(txns []models.Transaction) (resume time.Time, ok bool) {
	var last time.Time
	for i := range txns {
		if txns[i].Suspicious {
			continue
		}
		if !ok || txns[i].Date.After(last) {
			last = txns[i].Date
			ok = true
		}
	}
	if !ok {
		return time.Time{}, false
	}
	return monthStart(last).AddDate(0, 1, 0), true
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(month time.Time) int {
	return monthStart(month).AddDate(0, 1, -1).Day()
}

// sortTransactions orders by date, breaking same-date ties by identifier.
// Identifiers are unique, so the order is total and deterministic.
func sortTransactions(txns []models.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].ID < txns[j].ID
	})
}

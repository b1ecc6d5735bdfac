package anomaly

import (
	"fmt"
	"time"

	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// Detect scans charges dated on or after since and labels the ones that
// deviate from their merchant's derived pattern. Patterns are built from
// the full history, so records before since still inform what "normal"
// looks like even though they are never relabeled.
//
// A charge gets at most one label; when several classifiers match, the
// most specific wins: duplicate, then overcharge, then unexpected.
// Charges already labeled by the injector keep their label.
//
// txns must be sorted by date. Detect mutates and returns the slice.
func Detect(txns []models.Transaction, since time.Time) []models.Transaction {
	patterns := make(map[string]*models.MerchantPattern)
	for i := range txns {
		t := &txns[i]
		if t.Suspicious || t.Amount >= 0 || t.Date.Before(since) {
			continue
		}

		pat, ok := patterns[t.Merchant]
		if !ok {
			pat = AnalyzePattern(txns, t.Merchant)
			patterns[t.Merchant] = pat
		}
		if pat == nil {
			continue
		}

		if parent, gap, hit := matchDuplicate(txns, i, pat); hit {
			t.Suspicious = true
			t.SuspiciousType = models.SuspiciousDuplicate
			t.ParentID = parent.ID
			t.SuspicionReason = fmt.Sprintf("charged %s again only %d days after the previous charge; %s normally bills every %d days",
				utils.FormatUSD(-t.Amount), gap, t.Merchant, pat.IntervalDays)
			continue
		}
		if hit := matchOvercharge(t, pat); hit {
			t.Suspicious = true
			t.SuspiciousType = models.SuspiciousOvercharge
			t.SuspicionReason = fmt.Sprintf("%s exceeds the usual %s for %s and landed on the regular billing day",
				utils.FormatUSD(-t.Amount), utils.FormatUSD(pat.MaxNormalAmount()), t.Merchant)
			continue
		}
		if hit := matchUnexpected(txns, i, pat); hit {
			t.Suspicious = true
			t.SuspiciousType = models.SuspiciousUnexpected
			t.SuspicionReason = fmt.Sprintf("%s is not a known amount for %s and nothing similar appears within 3 months",
				utils.FormatUSD(-t.Amount), t.Merchant)
		}
	}
	return txns
}

// matchDuplicate flags a repeat of a known-normal amount that arrives
// both more than 3 days early and in under half the expected interval.
// The double condition keeps a mildly early charge from flagging while a
// genuine double-bill a few days apart always does.
func matchDuplicate(txns []models.Transaction, idx int, pat *models.MerchantPattern) (*models.Transaction, int, bool) {
	t := &txns[idx]
	if !amountKnown(pat, -t.Amount) {
		return nil, 0, false
	}

	// Most recent strictly earlier charge by this merchant for the same
	// amount; without one there is nothing to duplicate.
	for j := idx - 1; j >= 0; j-- {
		prev := &txns[j]
		if prev.Merchant != t.Merchant || prev.Amount >= 0 {
			continue
		}
		if !prev.Date.Before(t.Date) {
			continue
		}
		if !utils.AmountsEqual(-prev.Amount, -t.Amount) {
			continue
		}
		gap := daysBetween(prev.Date, t.Date)
		if gap < pat.IntervalDays-dayWindow && float64(gap) < float64(pat.IntervalDays)/2 {
			return prev, gap, true
		}
		return nil, 0, false
	}
	return nil, 0, false
}

// matchOvercharge flags a charge above the highest normal amount by more
// than the cent tolerance when it lands within 3 days of the merchant's
// usual billing day. Off-schedule price excursions fall through to the
// unexpected classifier instead.
func matchOvercharge(t *models.Transaction, pat *models.MerchantPattern) bool {
	if -t.Amount <= pat.MaxNormalAmount()+utils.AmountTolerance {
		return false
	}
	offset := t.Date.Day() - pat.BillingDay
	if offset < 0 {
		offset = -offset
	}
	return offset <= dayWindow
}

// matchUnexpected flags an amount that matches none of the merchant's
// normal amounts and has no same-amount sibling within a 3-calendar-month
// window either side. The window absolves quarterly or semi-annual
// charges that the monthly interval model cannot represent.
func matchUnexpected(txns []models.Transaction, idx int, pat *models.MerchantPattern) bool {
	t := &txns[idx]
	if amountKnown(pat, -t.Amount) {
		return false
	}

	lo := t.Date.AddDate(0, -3, 0)
	hi := t.Date.AddDate(0, 3, 0)
	for j := range txns {
		if j == idx {
			continue
		}
		other := &txns[j]
		if other.Merchant != t.Merchant || other.Amount >= 0 {
			continue
		}
		if other.Date.Before(lo) || other.Date.After(hi) {
			continue
		}
		if utils.AmountsEqual(-other.Amount, -t.Amount) {
			return false
		}
	}
	return true
}

func amountKnown(pat *models.MerchantPattern, amount float64) bool {
	for _, normal := range pat.NormalAmounts {
		if utils.AmountsEqual(normal, amount) {
			return true
		}
	}
	return false
}

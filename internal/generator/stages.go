package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nebulazer123/moneymap/internal/data"
	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// monthCtx carries the state for one month of emission: the month's own
// random stream, the per-phase sequence counters, and the shared
// stable-amount registry. Stages append to out in their fixed order.
type monthCtx struct {
	catalog  *data.Catalog
	profile  *models.LifestyleProfile
	rng      *utils.Random
	month    time.Time
	days     int
	seqs     map[Phase]int
	registry *StableAmountRegistry
	out      []models.Transaction
}

func (c *monthCtx) nextID(phase Phase) string {
	id := MakeID(c.profile.ID, c.month, phase, c.seqs[phase])
	c.seqs[phase]++
	return id
}

// date builds the transaction date for a day-of-month, clamped to the
// actual length of the month so day 31 in April lands on the 30th.
func (c *monthCtx) date(day int) time.Time {
	if day > c.days {
		day = c.days
	}
	if day < 1 {
		day = 1
	}
	return time.Date(c.month.Year(), c.month.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Stage 1: fixed recurring bills. Housing lands on day 1; every other bill
// draws its day each month from a fixed window. Amounts are settled once
// through the registry and repeat exactly.
func (c *monthCtx) emitRecurringBills() {
	housingAmount := c.registry.Amount("housing", c.profile.HousingProvider, "", func() float64 {
		if c.profile.HousingType == models.HousingRent {
			return utils.RoundCents(c.rng.Float64Range(1150, 2450))
		}
		return utils.RoundCents(c.rng.Float64Range(1450, 3150))
	})
	c.addBill("housing", c.profile.HousingProvider, 1, housingAmount)

	for _, utility := range c.profile.Utilities {
		day := c.rng.IntRange(3, 12)
		amount := c.registry.Amount("utilities", utility, "", func() float64 {
			return utils.RoundCents(c.rng.Float64Range(35, 180))
		})
		c.addBill("utilities", utility, day, amount)
	}

	phoneDay := c.rng.IntRange(15, 20)
	phoneAmount := c.registry.Amount("phone", c.profile.PhoneCarrier, "", func() float64 {
		return utils.RoundCents(c.rng.Float64Range(45, 120))
	})
	c.addBill("phone", c.profile.PhoneCarrier, phoneDay, phoneAmount)

	internetDay := c.rng.IntRange(8, 14)
	internetAmount := c.registry.Amount("internet", c.profile.InternetProvider, "", func() float64 {
		return utils.RoundCents(c.rng.Float64Range(40, 90))
	})
	c.addBill("internet", c.profile.InternetProvider, internetDay, internetAmount)

	type insuranceLine struct {
		insurer          string
		dayMin, dayMax   int
		amtMin, amtMax   float64
	}
	for _, line := range []insuranceLine{
		{c.profile.AutoInsurer, 5, 10, 90, 220},
		{c.profile.HealthInsurer, 2, 6, 160, 450},
		{c.profile.HomeInsurer, 10, 15, 60, 150},
		{c.profile.LifeInsurer, 20, 25, 25, 80},
	} {
		if line.insurer == "" {
			continue
		}
		day := c.rng.IntRange(line.dayMin, line.dayMax)
		amount := c.registry.Amount("insurance", line.insurer, "", func() float64 {
			return utils.RoundCents(c.rng.Float64Range(line.amtMin, line.amtMax))
		})
		c.addBill("insurance", line.insurer, day, amount)
	}

	if c.profile.CarLoanLender != "" {
		day := c.rng.IntRange(10, 16)
		amount := c.registry.Amount("loans", c.profile.CarLoanLender, "", func() float64 {
			return utils.RoundCents(c.rng.Float64Range(250, 550))
		})
		c.addBill("loans", c.profile.CarLoanLender, day, amount)
	}
	if c.profile.StudentLoanLender != "" {
		day := c.rng.IntRange(18, 24)
		amount := c.registry.Amount("loans", c.profile.StudentLoanLender, "", func() float64 {
			return utils.RoundCents(c.rng.Float64Range(150, 400))
		})
		c.addBill("loans", c.profile.StudentLoanLender, day, amount)
	}
	for _, lender := range c.profile.OtherLoans {
		day := c.rng.IntRange(2, 26)
		amount := c.registry.Amount("loans", lender, "", func() float64 {
			return utils.RoundCents(c.rng.Float64Range(80, 300))
		})
		c.addBill("loans", lender, day, amount)
	}
}

func (c *monthCtx) addBill(category, merchant string, day int, amount float64) {
	c.out = append(c.out, models.Transaction{
		ID:          c.nextID(PhaseRecurring),
		Date:        c.date(day),
		Amount:      -amount,
		Description: fmt.Sprintf("ACH Debit - %s", merchant),
		Merchant:    merchant,
		Category:    category,
		Kind:        models.TxKindExpense,
		Account:     c.profile.PrimaryBank,
		Recurring:   true,
	})
}

// Stage 2: subscriptions, each on its fixed billing day. The amount is
// settled in the registry the first month the plan is seen and reused
// verbatim afterward.
func (c *monthCtx) emitSubscriptions() {
	for _, plan := range c.profile.Subscriptions {
		plan := plan
		amount := c.registry.Amount(plan.Category, plan.Merchant, "", func() float64 {
			return plan.Amount
		})
		c.out = append(c.out, models.Transaction{
			ID:           c.nextID(PhaseSubscription),
			Date:         c.date(plan.BillingDay),
			Amount:       -amount,
			Description:  fmt.Sprintf("Recurring - %s", plan.Merchant),
			Merchant:     plan.Merchant,
			Category:     plan.Category,
			Kind:         models.TxKindSubscription,
			Account:      c.profile.PrimaryBank,
			Subscription: true,
		})
	}
}

// Stage 3: two payroll deposits, day 1 and day 15. Income is the one
// recurring category whose amount is redrawn every month.
func (c *monthCtx) emitIncome() {
	amount := utils.RoundCents(c.rng.Float64Range(c.catalog.SalaryBand.Min, c.catalog.SalaryBand.Max))
	for _, day := range []int{1, 15} {
		c.out = append(c.out, models.Transaction{
			ID:          c.nextID(PhaseIncome),
			Date:        c.date(day),
			Amount:      amount,
			Description: "Direct Deposit - Payroll",
			Merchant:    "Payroll",
			Category:    "income",
			Kind:        models.TxKindIncome,
			Account:     c.profile.PrimaryBank,
		})
	}
}

type descStyle int

const (
	styleCard descStyle = iota
	styleOnline
)

// spendCategory defines one variable-spending category: its monthly
// cadence, amount band, and statement style. The table order is part of
// the draw-order contract.
type spendCategory struct {
	category         string
	minCount, maxCount int
	minAmt, maxAmt   float64
	style            descStyle
}

var spendCategories = []spendCategory{
	{"groceries", 4, 5, 35, 160, styleCard},
	{"fastfood", 8, 12, 4, 18, styleCard},
	{"dining", 3, 5, 25, 90, styleCard},
	{"fuel", 4, 5, 28, 70, styleCard},
	{"rideshare", 2, 6, 8, 45, styleOnline},
	{"delivery", 3, 6, 18, 55, styleOnline},
	{"retail", 2, 4, 20, 180, styleCard},
	{"online", 3, 6, 12, 150, styleOnline},
	{"unclassified", 1, 3, 5, 60, styleOnline},
}

// spendPool maps a spending category to the persona's merchant pool. Fast
// food and casual dining share the dining pool; delivery platforms come
// straight from the catalog since they are the same few apps for everyone.
func (c *monthCtx) spendPool(category string) []string {
	switch category {
	case "groceries":
		return c.profile.Pools.Grocery
	case "fastfood", "dining":
		return c.profile.Pools.Dining
	case "fuel":
		return c.profile.Pools.Fuel
	case "rideshare":
		return c.profile.Pools.Rideshare
	case "delivery":
		return c.catalog.Delivery
	case "retail":
		return c.profile.Pools.Retail
	case "online":
		return c.profile.Pools.Online
	default:
		return c.profile.Pools.Unclassified
	}
}

// Stage 4: variable daily spending, category by category in table order.
func (c *monthCtx) emitVariableSpending() {
	for _, spec := range spendCategories {
		count := c.rng.IntRange(spec.minCount, spec.maxCount)
		pool := c.spendPool(spec.category)
		for i := 0; i < count; i++ {
			day := c.rng.IntRange(1, c.days)
			merchant := c.rng.PickString(pool)
			amount := utils.RoundCents(c.rng.Float64Range(spec.minAmt, spec.maxAmt))

			var desc string
			account := c.profile.PrimaryBank
			switch spec.style {
			case styleCard:
				desc = fmt.Sprintf("CARD PURCHASE - %s", strings.ToUpper(merchant))
				if len(c.profile.CreditCards) > 0 {
					account = c.profile.CreditCards[0]
				}
			default:
				desc = fmt.Sprintf("Online Payment - %s", merchant)
			}

			c.out = append(c.out, models.Transaction{
				ID:          c.nextID(PhaseVariable),
				Date:        c.date(day),
				Amount:      -amount,
				Description: desc,
				Merchant:    merchant,
				Category:    spec.category,
				Kind:        models.TxKindExpense,
				Account:     account,
			})
		}
	}
}

// Stage 5: a probabilistic monthly transfer to savings. Not every month
// has one.
func (c *monthCtx) emitTransfers() {
	if !c.rng.Probability(0.7) {
		return
	}
	day := c.rng.IntRange(1, 28)
	amount := utils.RoundCents(c.rng.Float64Range(100, 800))
	c.out = append(c.out, models.Transaction{
		ID:          c.nextID(PhaseTransfer),
		Date:        c.date(day),
		Amount:      -amount,
		Description: fmt.Sprintf("Transfer to Savings - %s", c.profile.SecondaryBank),
		Merchant:    c.profile.SecondaryBank,
		Category:    "transfer",
		Kind:        models.TxKindTransferInternal,
		Account:     c.profile.PrimaryBank,
	})
}

// Stage 6: account fees from the profile's fixed palette, 2-8 occurrences
// with +/-20% jitter on the base amount.
func (c *monthCtx) emitFees() {
	count := c.rng.IntRange(2, 8)
	for i := 0; i < count; i++ {
		fee := c.profile.FeeTypes[c.rng.IntN(len(c.profile.FeeTypes))]
		day := c.rng.IntRange(1, c.days)
		amount := utils.RoundCents(fee.BaseAmount * c.rng.Float64Range(0.8, 1.2))
		c.out = append(c.out, models.Transaction{
			ID:          c.nextID(PhaseFee),
			Date:        c.date(day),
			Amount:      -amount,
			Description: fee.Name,
			Merchant:    c.profile.PrimaryBank,
			Category:    "fees",
			Kind:        models.TxKindFee,
			Account:     c.profile.PrimaryBank,
		})
	}
}

// Package profile materializes a lifestyle persona from a seed string: a
// fixed assignment of banks, bills, insurers, lenders, subscription plans,
// and daily-spend merchant pools that stays constant for the profile's
// lifetime.
package profile

import (
	"github.com/Nebulazer123/moneymap/internal/data"
	"github.com/Nebulazer123/moneymap/internal/models"
	"github.com/Nebulazer123/moneymap/internal/utils"
)

// Build derives a complete persona from the seed in a single pass over the
// seeded random source.
//
// The draw order below is a compatibility contract, not a style choice.
// Stages consume the generator strictly in this sequence:
//
//	1. accounts   2. housing   3. bills   4. insurance
//	5. loans      6. subscriptions        7. spend pools
//	8. fee palette
//
// Adding a draw to an early stage shifts every later draw and changes all
// existing profiles; new draws must be appended at the end.
func Build(seed string, catalog *data.Catalog) *models.LifestyleProfile {
	rng := utils.NewRandomFromString(seed)
	p := &models.LifestyleProfile{ID: seed}

	buildAccounts(p, rng, catalog)
	buildHousing(p, rng, catalog)
	buildBills(p, rng, catalog)
	buildInsurance(p, rng, catalog)
	buildLoans(p, rng, catalog)
	buildSubscriptions(p, rng, catalog)
	buildSpendPools(p, rng, catalog)
	buildFeePalette(p, rng, catalog)

	return p
}

func buildAccounts(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	banks := rng.PickN(catalog.Banks, 2, 2)
	p.PrimaryBank = banks[0]
	p.SecondaryBank = banks[1]
	p.Wallets = rng.PickN(catalog.Wallets, 1, 3)
	p.CreditCards = rng.PickN(catalog.CardIssuers, 1, 3)
	p.Investments = rng.PickN(catalog.InvestmentVenues, 0, 2)
}

func buildHousing(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	if rng.Probability(0.6) {
		p.HousingType = models.HousingRent
		p.HousingProvider = rng.PickString(catalog.Housing.Landlords)
	} else {
		p.HousingType = models.HousingMortgage
		p.HousingProvider = rng.PickString(catalog.Housing.MortgageLenders)
	}
}

func buildBills(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	p.Utilities = rng.PickN(catalog.Utilities, 2, 5)
	p.PhoneCarrier = rng.PickString(catalog.PhoneCarriers)
	p.InternetProvider = rng.PickString(catalog.InternetProviders)
}

func buildInsurance(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	p.AutoInsurer = rng.PickString(catalog.Insurers.Auto)
	p.HealthInsurer = rng.PickString(catalog.Insurers.Health)
	p.HomeInsurer = rng.PickString(catalog.Insurers.Home)
	if rng.Probability(0.3) {
		p.LifeInsurer = rng.PickString(catalog.Insurers.Life)
	}
}

func buildLoans(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	if rng.Probability(0.5) {
		p.CarLoanLender = rng.PickString(catalog.Lenders.Auto)
	}
	if rng.Probability(0.4) {
		p.StudentLoanLender = rng.PickString(catalog.Lenders.Student)
	}
	p.OtherLoans = rng.PickN(catalog.Lenders.Personal, 0, 2)
}

// Subscription cardinalities per category. Music is always exactly one
// plan; gym is optional.
func buildSubscriptions(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	addCategory := func(category string, min, max int) {
		for _, merchant := range rng.PickN(catalog.SubscriptionPool(category), min, max) {
			p.Subscriptions = append(p.Subscriptions, models.SubscriptionPlan{
				Category:   category,
				Merchant:   merchant,
				Amount:     subscriptionPrice(rng, catalog, merchant),
				BillingDay: rng.IntRange(1, 28),
			})
		}
	}

	addCategory("streaming", 2, 5)
	addCategory("music", 1, 1)
	addCategory("cloud", 1, 3)
	if rng.Probability(0.4) {
		addCategory("gym", 1, 1)
	}
	addCategory("software", 2, 6)
}

// subscriptionPrice picks one of the merchant's published plan prices, or a
// randomized price when the merchant has no list entry.
func subscriptionPrice(rng *utils.Random, catalog *data.Catalog, merchant string) float64 {
	if prices, ok := catalog.PricesFor(merchant); ok {
		return prices[rng.IntN(len(prices))]
	}
	return utils.RoundCents(rng.Float64Range(4.99, 29.99))
}

func buildSpendPools(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	p.Pools = models.MerchantPools{
		Grocery:      rng.PickN(catalog.SpendPool("grocery"), 2, 4),
		Dining:       rng.PickN(catalog.SpendPool("dining"), 4, 7),
		Fuel:         rng.PickN(catalog.SpendPool("fuel"), 2, 3),
		Rideshare:    rng.PickN(catalog.SpendPool("rideshare"), 1, 2),
		Retail:       rng.PickN(catalog.SpendPool("retail"), 3, 5),
		Online:       rng.PickN(catalog.SpendPool("online"), 3, 5),
		Unclassified: rng.PickN(catalog.SpendPool("unclassified"), 2, 4),
	}
}

// The fee palette is sampled once here and reused every month; the engine
// never re-samples it.
func buildFeePalette(p *models.LifestyleProfile, rng *utils.Random, catalog *data.Catalog) {
	for _, name := range rng.PickN(catalog.FeeNames(), 3, 6) {
		p.FeeTypes = append(p.FeeTypes, models.FeeType{
			Name:       name,
			BaseAmount: catalog.FeeAmount(name),
		})
	}
}

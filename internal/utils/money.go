package utils

import (
	"fmt"
	"math"
)

// AmountTolerance is the comparison slack for dollar amounts. Amounts are
// float64 dollars rounded to cents at creation; exact equality would still
// produce false negatives after arithmetic, so every amount comparison in
// the analyzer goes through AmountsEqual.
const AmountTolerance = 0.10

// RoundCents rounds a dollar amount to the nearest cent.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// AmountsEqual reports whether two amounts match within AmountTolerance.
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= AmountTolerance
}

// FormatUSD renders an amount the way it appears on a statement, with the
// sign applied before the symbol (-$12.34).
func FormatUSD(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

package funding

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Progress returns collected/target*100 rounded half-to-even to 2 places, or 0 when target <= 0.
func Progress(collected, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return collected.Div(target).Mul(hundred).RoundBank(2)
}

// GoalReached reports whether collected covers a positive goal.
func GoalReached(collected, goal decimal.Decimal) bool {
	return goal.IsPositive() && collected.GreaterThanOrEqual(goal)
}

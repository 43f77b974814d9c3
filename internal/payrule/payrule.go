// Package payrule is the single evaluation point for the weekly driver
// pay rules. Dashboard, payroll runs and the chat assistant all call
// Evaluate; none of them re-derive the constants or branches.
package payrule

import "github.com/shopspring/decimal"

// Rules holds the business policy parameters. Declared once and
// injected, never inlined at call sites.
type Rules struct {
	HoursThreshold   decimal.Decimal // weekly hours goal
	RevenueThreshold decimal.Decimal // weekly platform revenue goal (MXN)
	SupportAmount    decimal.Decimal // flat payment when the goal is missed
	BaseSalary       decimal.Decimal // base pay when the goal is met
	BonusStep        decimal.Decimal // revenue step above threshold
	BonusPerStep     decimal.Decimal // bonus per full step
	OvertimeRate     decimal.Decimal // pay per extra hour
	MaxOvertimeHours decimal.Decimal // extra-hour cap
}

// DefaultRules is the current LAFA policy.
func DefaultRules() Rules {
	return Rules{
		HoursThreshold:   decimal.NewFromInt(40),
		RevenueThreshold: decimal.NewFromInt(6000),
		SupportAmount:    decimal.NewFromInt(1000),
		BaseSalary:       decimal.NewFromInt(2500),
		BonusStep:        decimal.NewFromInt(500),
		BonusPerStep:     decimal.NewFromInt(100),
		OvertimeRate:     decimal.NewFromInt(50),
		MaxOvertimeHours: decimal.NewFromInt(8),
	}
}

// Input is one driver-week. PrevWeekHours defaults to zero when the
// prior week is unknown.
type Input struct {
	Hours         decimal.Decimal
	Revenue       decimal.Decimal
	PrevWeekHours decimal.Decimal
}

// Breakdown is the computed pay for one driver-week. All amounts are
// rounded to 2 decimals.
type Breakdown struct {
	Base     decimal.Decimal
	Bonus    decimal.Decimal
	Overtime decimal.Decimal
	Support  decimal.Decimal
	Total    decimal.Decimal
}

// MeetsGoal reports whether the week hits both targets.
func (r Rules) MeetsGoal(hours, revenue decimal.Decimal) bool {
	return hours.GreaterThanOrEqual(r.HoursThreshold) &&
		revenue.GreaterThanOrEqual(r.RevenueThreshold)
}

// Evaluate applies the weekly pay rules. Pure and deterministic:
//
//  1. Below 40 h or below $6,000 revenue the driver gets the flat
//     support payment and nothing else.
//  2. Otherwise base salary, plus $100 per full $500 of revenue above
//     the threshold, plus overtime only when the PREVIOUS week also
//     reached 40 h: each hour above 40 pays $50, capped at 8 hours.
func (r Rules) Evaluate(in Input) Breakdown {
	zero := decimal.Zero

	if !r.MeetsGoal(in.Hours, in.Revenue) {
		support := r.SupportAmount.Round(2)
		return Breakdown{
			Base:     zero,
			Bonus:    zero,
			Overtime: zero,
			Support:  support,
			Total:    support,
		}
	}

	excess := in.Revenue.Sub(r.RevenueThreshold)
	steps := excess.Div(r.BonusStep).Floor()
	bonus := steps.Mul(r.BonusPerStep)

	overtime := zero
	if in.PrevWeekHours.GreaterThanOrEqual(r.HoursThreshold) {
		extra := in.Hours.Sub(r.HoursThreshold)
		if extra.IsNegative() {
			extra = zero
		}
		if extra.GreaterThan(r.MaxOvertimeHours) {
			extra = r.MaxOvertimeHours
		}
		overtime = extra.Mul(r.OvertimeRate)
	}

	base := r.BaseSalary.Round(2)
	bonus = bonus.Round(2)
	overtime = overtime.Round(2)

	return Breakdown{
		Base:     base,
		Bonus:    bonus,
		Overtime: overtime,
		Support:  zero,
		Total:    base.Add(bonus).Add(overtime).Round(2),
	}
}

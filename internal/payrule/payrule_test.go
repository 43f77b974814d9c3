package payrule_test

import (
	"testing"

	"github.com/esnupy/lafa/internal/payrule"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func evaluate(hours, revenue, prevHours string) payrule.Breakdown {
	return payrule.DefaultRules().Evaluate(payrule.Input{
		Hours:         dec(hours),
		Revenue:       dec(revenue),
		PrevWeekHours: dec(prevHours),
	})
}

func TestEvaluate_GoalMissed_PaysSupportOnly(t *testing.T) {
	cases := []struct {
		name    string
		hours   string
		revenue string
	}{
		{"zero week", "0", "0"},
		{"hours short", "39.99", "9000"},
		{"revenue short", "80", "5999.99"},
		{"both short", "10", "1000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := evaluate(tc.hours, tc.revenue, "45")

			assert.True(t, b.Base.IsZero())
			assert.True(t, b.Bonus.IsZero())
			assert.True(t, b.Overtime.IsZero())
			assert.Equal(t, "1000.00", b.Support.StringFixed(2))
			assert.Equal(t, "1000.00", b.Total.StringFixed(2))
		})
	}
}

func TestEvaluate_GoalMet_NoSupport(t *testing.T) {
	b := evaluate("45", "7200", "45")

	assert.True(t, b.Support.IsZero())
	assert.Equal(t, b.Base.Add(b.Bonus).Add(b.Overtime).StringFixed(2), b.Total.StringFixed(2))
}

func TestEvaluate_BonusIsAStepFunction(t *testing.T) {
	cases := []struct {
		revenue string
		bonus   string
	}{
		{"6000.00", "0.00"},
		{"6499.99", "0.00"},
		{"6500.00", "100.00"},
		{"6999.99", "100.00"},
		{"7000.00", "200.00"},
	}

	for _, tc := range cases {
		t.Run(tc.revenue, func(t *testing.T) {
			b := evaluate("40", tc.revenue, "0")
			assert.Equal(t, tc.bonus, b.Bonus.StringFixed(2))
		})
	}
}

func TestEvaluate_OvertimeGatedOnPreviousWeek(t *testing.T) {
	// 48 h this week, prior week below 40: no overtime.
	b := evaluate("48", "7000", "39")
	assert.Equal(t, "0.00", b.Overtime.StringFixed(2))
	assert.Equal(t, "2700.00", b.Total.StringFixed(2)) // 2500 + 200

	// Same week but prior week at 40: 8 extra hours at $50.
	b = evaluate("48", "7000", "40")
	assert.Equal(t, "400.00", b.Overtime.StringFixed(2))
	assert.Equal(t, "3100.00", b.Total.StringFixed(2))
}

func TestEvaluate_OvertimeCappedAtEightHours(t *testing.T) {
	b := evaluate("60", "6000", "40")

	// 20 extra hours, capped at 8.
	assert.Equal(t, "400.00", b.Overtime.StringFixed(2))
	assert.Equal(t, "2900.00", b.Total.StringFixed(2))
}

func TestEvaluate_ExactlyFortyHoursEarnsNoOvertime(t *testing.T) {
	b := evaluate("40.0", "6500", "41")

	assert.Equal(t, "2500.00", b.Base.StringFixed(2))
	assert.Equal(t, "100.00", b.Bonus.StringFixed(2))
	assert.Equal(t, "0.00", b.Overtime.StringFixed(2))
	assert.Equal(t, "2600.00", b.Total.StringFixed(2))
}

func TestMeetsGoal(t *testing.T) {
	rules := payrule.DefaultRules()

	assert.True(t, rules.MeetsGoal(dec("40"), dec("6000")))
	assert.False(t, rules.MeetsGoal(dec("39.99"), dec("6000")))
	assert.False(t, rules.MeetsGoal(dec("40"), dec("5999.99")))
}

package calendar

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsRamadan(t *testing.T) {
	c := New(Params{})
	// Ramadan 1446 ran across March 2025; mid-month is safely inside it.
	if !c.IsRamadan(date(2025, time.March, 15)) {
		t.Fatalf("2025-03-15 should fall in Ramadan")
	}
	if c.IsRamadan(date(2025, time.July, 15)) {
		t.Fatalf("2025-07-15 should not fall in Ramadan")
	}
}

func TestLunarEffectRamadanEscalates(t *testing.T) {
	c := New(Params{})
	mid := c.LunarEffect(date(2025, time.March, 15))
	if mid < 1.3 {
		t.Fatalf("mid-Ramadan effect %f, want at least 1.3", mid)
	}
	late := c.LunarEffect(date(2025, time.March, 26))
	if late < mid {
		t.Fatalf("late Ramadan effect %f should not drop below mid-month %f", late, mid)
	}
	if eff := c.LunarEffect(date(2025, time.July, 15)); eff != 1.0 {
		t.Fatalf("ordinary date lunar effect %f, want 1.0", eff)
	}
}

func TestIsLebaran(t *testing.T) {
	c := New(Params{})
	// Eid al-Fitr 1446 fell at the end of March 2025.
	if !c.IsLebaran(date(2025, time.April, 1)) {
		t.Fatalf("2025-04-01 should fall in the Lebaran window")
	}
	if c.IsLebaran(date(2025, time.June, 1)) {
		t.Fatalf("2025-06-01 should not fall in the Lebaran window")
	}
}

func TestFallbackLunarEffect(t *testing.T) {
	c := New(Params{Fallback: []FallbackWindow{{
		Year:         2030,
		RamadanStart: date(2030, time.January, 5),
		RamadanEnd:   date(2030, time.February, 3),
		LebaranStart: date(2030, time.February, 4),
		LebaranEnd:   date(2030, time.February, 10),
	}}})

	cases := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"early ramadan", date(2030, time.January, 8), 1.3},
		{"mid ramadan", date(2030, time.January, 18), 1.6},
		{"late ramadan", date(2030, time.February, 1), 1.8},
		{"eid peak", date(2030, time.February, 4), 2.2},
		{"eid tail", date(2030, time.February, 8), 1.5},
		{"no window for prior year", date(2029, time.December, 28), 1.0},
		{"pre-ramadan stock-up", date(2030, time.January, 2), 1.1},
		{"ordinary day", date(2030, time.June, 1), 1.0},
	}
	for _, tc := range cases {
		if got := c.fallbackLunarEffect(tc.t); got != tc.want {
			t.Fatalf("%s: effect %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestIsHoliday(t *testing.T) {
	c := New(Params{})
	for _, d := range []time.Time{
		date(2025, time.January, 1),
		date(2025, time.August, 17),
		date(2025, time.December, 25),
	} {
		if !c.IsHoliday(d) {
			t.Fatalf("%v should be a fixed holiday", d)
		}
	}
	if c.IsHoliday(date(2025, time.February, 3)) {
		t.Fatalf("ordinary date flagged as holiday")
	}
}

func TestWeekendHolidayEffect(t *testing.T) {
	c := New(Params{})
	if got := c.WeekendHolidayEffect(date(2025, time.June, 7)); got != 1.2 { // Saturday
		t.Fatalf("Saturday effect %f, want 1.2", got)
	}
	if got := c.WeekendHolidayEffect(date(2025, time.December, 25)); got != 1.5 { // Thursday holiday
		t.Fatalf("holiday effect %f, want 1.5", got)
	}
	if got := c.WeekendHolidayEffect(date(2025, time.June, 10)); got != 1.0 { // Tuesday
		t.Fatalf("weekday effect %f, want 1.0", got)
	}
}

func TestBusinessCycleEffect(t *testing.T) {
	c := New(Params{})
	if got := c.BusinessCycleEffect(date(2025, time.September, 10)); got != 1.0 {
		t.Fatalf("ordinary day effect %f, want 1.0", got)
	}
	if got := c.BusinessCycleEffect(date(2025, time.September, 25)); got != 1.15 { // payday
		t.Fatalf("payday effect %f, want 1.15", got)
	}
	want := 1.15 * 1.1 // payday in a school month
	if got := c.BusinessCycleEffect(date(2025, time.June, 25)); math.Abs(got-want) > 1e-9 {
		t.Fatalf("payday+school effect %f, want %f", got, want)
	}
	if got := c.BusinessCycleEffect(date(2025, time.March, 5)); got != 1.05 { // harvest month
		t.Fatalf("harvest effect %f, want 1.05", got)
	}
}

func TestEffectComposes(t *testing.T) {
	c := New(Params{})
	d := date(2025, time.September, 27) // Saturday payday
	want := c.LunarEffect(d) * c.WeekendHolidayEffect(d) * c.BusinessCycleEffect(d)
	if got := c.Effect(d); math.Abs(got-want) > 1e-9 {
		t.Fatalf("effect %f, want composed %f", got, want)
	}
	if got := c.Effect(d); got < 1.2*1.15 {
		t.Fatalf("Saturday payday effect %f below expected floor", got)
	}
}

package calendar

import (
	"time"

	"github.com/hablullah/go-hijri"
)

// HijriDate is a resolved Islamic calendar date.
type HijriDate struct {
	Year  int
	Month int
	Day   int
}

// FallbackWindow is an approximate Ramadan/Lebaran window for one Gregorian
// year, used when arithmetic Hijri conversion fails. Injected via config so
// new years can be added without redeploying.
type FallbackWindow struct {
	Year         int       `yaml:"year"`
	RamadanStart time.Time `yaml:"ramadan_start"`
	RamadanEnd   time.Time `yaml:"ramadan_end"`
	LebaranStart time.Time `yaml:"lebaran_start"`
	LebaranEnd   time.Time `yaml:"lebaran_end"`
}

// Params configures every multiplier the calculator can emit. All effects
// for a date compose by straight multiplication.
type Params struct {
	WeekendMultiplier float64 `yaml:"weekend_multiplier" default:"1.2"`
	HolidayMultiplier float64 `yaml:"holiday_multiplier" default:"1.5"`
	PaydayMultiplier  float64 `yaml:"payday_multiplier" default:"1.15"`
	SchoolMultiplier  float64 `yaml:"school_multiplier" default:"1.1"`
	HarvestMultiplier float64 `yaml:"harvest_multiplier" default:"1.05"`

	// Fixed-date holidays as MM-DD strings. Defaults cover New Year,
	// Independence Day and Christmas.
	FixedHolidays []string `yaml:"fixed_holidays"`

	// Days of month treated as payday window.
	PaydayDays []int `yaml:"payday_days"`

	// Months of the school-season and harvest-season cycles.
	SchoolMonths  []int `yaml:"school_months"`
	HarvestMonths []int `yaml:"harvest_months"`

	// Approximate lunar windows per year for when conversion fails.
	Fallback []FallbackWindow `yaml:"fallback_windows"`
}

func (p *Params) fillDefaults() {
	if len(p.FixedHolidays) == 0 {
		p.FixedHolidays = []string{"01-01", "08-17", "12-25"}
	}
	if len(p.PaydayDays) == 0 {
		p.PaydayDays = []int{1, 25, 26, 27, 28}
	}
	if len(p.SchoolMonths) == 0 {
		p.SchoolMonths = []int{6, 7}
	}
	if len(p.HarvestMonths) == 0 {
		p.HarvestMonths = []int{3, 4}
	}
	if p.WeekendMultiplier == 0 {
		p.WeekendMultiplier = 1.2
	}
	if p.HolidayMultiplier == 0 {
		p.HolidayMultiplier = 1.5
	}
	if p.PaydayMultiplier == 0 {
		p.PaydayMultiplier = 1.15
	}
	if p.SchoolMultiplier == 0 {
		p.SchoolMultiplier = 1.1
	}
	if p.HarvestMultiplier == 0 {
		p.HarvestMultiplier = 1.05
	}
}

// Calculator resolves calendar-driven demand multipliers for a date.
// It keeps no per-call state and is safe for concurrent use.
type Calculator struct {
	p         Params
	holidays  map[string]bool
	paydays   map[int]bool
	school    map[int]bool
	harvest   map[int]bool
	fallbacks map[int]FallbackWindow
}

// New builds a Calculator from params, filling zero fields with the
// production defaults.
func New(p Params) *Calculator {
	p.fillDefaults()
	c := &Calculator{
		p:         p,
		holidays:  make(map[string]bool, len(p.FixedHolidays)),
		paydays:   make(map[int]bool, len(p.PaydayDays)),
		school:    make(map[int]bool, len(p.SchoolMonths)),
		harvest:   make(map[int]bool, len(p.HarvestMonths)),
		fallbacks: make(map[int]FallbackWindow, len(p.Fallback)),
	}
	for _, h := range p.FixedHolidays {
		c.holidays[h] = true
	}
	for _, d := range p.PaydayDays {
		c.paydays[d] = true
	}
	for _, m := range p.SchoolMonths {
		c.school[m] = true
	}
	for _, m := range p.HarvestMonths {
		c.harvest[m] = true
	}
	for _, w := range p.Fallback {
		c.fallbacks[w.Year] = w
	}
	return c
}

// Hijri converts a Gregorian date. The second return is false when the
// conversion failed and callers should use the fallback windows.
func (c *Calculator) Hijri(t time.Time) (HijriDate, bool) {
	h, err := hijri.CreateHijriDate(t, hijri.Default)
	if err != nil {
		return HijriDate{}, false
	}
	return HijriDate{Year: int(h.Year), Month: int(h.Month), Day: int(h.Day)}, true
}

// LunarEffect returns the Ramadan/Lebaran multiplier for a date.
// Ramadan escalates with its elapsed days, Eid peaks on days 1-2 and a
// 14-day pre-Ramadan window gets a mild lift. Unknown years yield 1.0.
func (c *Calculator) LunarEffect(t time.Time) float64 {
	if h, ok := c.Hijri(t); ok {
		switch {
		case h.Month == 9: // Ramadan
			switch {
			case h.Day <= 10:
				return 1.3
			case h.Day <= 20:
				return 1.6
			default:
				return 1.8
			}
		case h.Month == 10 && h.Day <= 2: // Eid al-Fitr / Lebaran
			return 2.2
		case h.Month == 10 && h.Day <= 7:
			return 1.5
		case h.Month == 8 && h.Day >= 16: // pre-Ramadan stock-up
			return 1.1
		}
		return 1.0
	}
	return c.fallbackLunarEffect(t)
}

func (c *Calculator) fallbackLunarEffect(t time.Time) float64 {
	w, ok := c.fallbacks[t.Year()]
	if !ok {
		return 1.0
	}
	switch {
	case inWindow(t, w.RamadanStart, w.RamadanEnd):
		elapsed := int(t.Sub(w.RamadanStart).Hours()/24) + 1
		switch {
		case elapsed <= 10:
			return 1.3
		case elapsed <= 20:
			return 1.6
		default:
			return 1.8
		}
	case inWindow(t, w.LebaranStart, w.LebaranEnd):
		if int(t.Sub(w.LebaranStart).Hours()/24) < 2 {
			return 2.2
		}
		return 1.5
	case !w.RamadanStart.IsZero() && t.Before(w.RamadanStart) && w.RamadanStart.Sub(t).Hours() <= 14*24:
		return 1.1
	}
	return 1.0
}

// IsRamadan reports whether the date falls inside Ramadan.
func (c *Calculator) IsRamadan(t time.Time) bool {
	if h, ok := c.Hijri(t); ok {
		return h.Month == 9
	}
	w, ok := c.fallbacks[t.Year()]
	return ok && inWindow(t, w.RamadanStart, w.RamadanEnd)
}

// IsLebaran reports whether the date falls inside the Eid/Lebaran window.
func (c *Calculator) IsLebaran(t time.Time) bool {
	if h, ok := c.Hijri(t); ok {
		return h.Month == 10 && h.Day <= 7
	}
	w, ok := c.fallbacks[t.Year()]
	return ok && inWindow(t, w.LebaranStart, w.LebaranEnd)
}

// IsHoliday reports whether the date is a configured fixed-date holiday.
func (c *Calculator) IsHoliday(t time.Time) bool {
	return c.holidays[t.Format("01-02")]
}

// WeekendHolidayEffect multiplies the weekend and fixed-holiday factors.
func (c *Calculator) WeekendHolidayEffect(t time.Time) float64 {
	eff := 1.0
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		eff *= c.p.WeekendMultiplier
	}
	if c.IsHoliday(t) {
		eff *= c.p.HolidayMultiplier
	}
	return eff
}

// BusinessCycleEffect multiplies payday, school-season and harvest-season
// factors for the date.
func (c *Calculator) BusinessCycleEffect(t time.Time) float64 {
	eff := 1.0
	if c.paydays[t.Day()] {
		eff *= c.p.PaydayMultiplier
	}
	if c.school[int(t.Month())] {
		eff *= c.p.SchoolMultiplier
	}
	if c.harvest[int(t.Month())] {
		eff *= c.p.HarvestMultiplier
	}
	return eff
}

// Effect is the full composed multiplier for a date: lunar, weekend/holiday
// and business-cycle factors stacked by straight multiplication.
func (c *Calculator) Effect(t time.Time) float64 {
	return c.LunarEffect(t) * c.WeekendHolidayEffect(t) * c.BusinessCycleEffect(t)
}

func inWindow(t, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

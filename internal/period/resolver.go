// Package period normalizes free-form spreadsheet period cells into a
// (year, month, quarter) triple.
//
// Resolution never fails: when no rung of the cascade recognizes the value,
// the period of the current date is returned. Callers that need to tell a
// recognized period from the fallback use Match.
package period

import (
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"finsight/internal/domain"
	"finsight/internal/workbook"
)

const (
	minYear = 1900
	maxYear = 2100

	// Serials beyond 73050 (2099-12-31) are treated as amounts, not dates.
	maxExcelSerial = 73050
)

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var (
	yearMonthPattern   = regexp.MustCompile(`^(\d{4})\s*[年/.\-]?\s*(\d{1,2})(?:\D|$)`)
	numYearMonthPat    = regexp.MustCompile(`^(\d{4})\s*[年/\-]?\s*(\d{1,2})(?:\D|$)`)
	cnQuarterPattern   = regexp.MustCompile(`^(\d{4})\s*年.*?第\s*([1-4一二三四])\s*季`)
	qQuarterPattern    = regexp.MustCompile(`^(\d{4})\s*年?\s*[-/]?\s*[Qq]\s*([1-4])(?:\D|$)`)
	fullDatePattern    = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	bareYearPattern    = regexp.MustCompile(`^(\d{4})\s*(?:年度?)?$`)
	allDigitsPattern   = regexp.MustCompile(`^\d+$`)
	chineseQuarterNums = map[string]int{"一": 1, "二": 2, "三": 3, "四": 4}
)

// extra layouts tried after cast's own list.
var dateLayouts = []string{
	"2006年1月2日",
	"2006.1.2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"1/2/2006",
}

type rung struct {
	name  string
	match func(s string) (domain.Period, bool)
}

// cascade is evaluated in order; the first rung that matches wins.
var cascade = []rung{
	{"year-month", matchYearMonth},
	{"year-quarter", matchQuarter},
	{"full-date", matchFullDate},
	{"bare-year", matchBareYear},
	{"excel-serial", matchExcelSerial},
	{"generic-date", matchGenericDate},
}

// numberCascade is used for numeric cells. A decimal point is not a
// year-month separator there: Excel stores 2024.10 as 2024.1.
var numberCascade = append([]rung{{"year-month", matchNumericYearMonth}}, cascade[1:]...)

// Resolver resolves period cells against a clock used for the fallback.
type Resolver struct {
	now func() time.Time
}

// NewResolver returns a Resolver whose fallback period comes from now.
// A nil now uses time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

var defaultResolver = NewResolver(nil)

// Resolve resolves v with the wall-clock fallback.
func Resolve(v workbook.Value) domain.Period {
	return defaultResolver.Resolve(v)
}

// Match reports the period v denotes, if any rung recognizes it.
func Match(v workbook.Value) (domain.Period, bool) {
	return defaultResolver.Match(v)
}

// Resolve returns the period v denotes or, failing that, the current period.
func (r *Resolver) Resolve(v workbook.Value) domain.Period {
	if p, ok := r.Match(v); ok {
		return p
	}
	return r.Current()
}

// Current returns the period of the resolver's clock.
func (r *Resolver) Current() domain.Period {
	return domain.PeriodOf(r.now())
}

// Match runs the cascade over v.
func (r *Resolver) Match(v workbook.Value) (domain.Period, bool) {
	p, rule := Trace(v)
	return p, rule != ""
}

// Trace runs the cascade over v and names the rule that matched.
// The rule is empty when nothing matched.
func Trace(v workbook.Value) (domain.Period, string) {
	switch v.Kind {
	case workbook.KindEmpty:
		return domain.Period{}, ""
	case workbook.KindDate:
		if p, ok := fromTime(v.Time); ok {
			return p, "date-cell"
		}
		return domain.Period{}, ""
	}

	s := v.String()
	if s == "" {
		return domain.Period{}, ""
	}
	rungs := cascade
	if v.Kind == workbook.KindNumber {
		rungs = numberCascade
	}
	for _, rg := range rungs {
		if p, ok := rg.match(s); ok {
			return p, rg.name
		}
	}
	return domain.Period{}, ""
}

// MatchString runs the cascade over a raw string.
func MatchString(s string) (domain.Period, bool) {
	return Match(workbook.StringValue(s))
}

func matchYearMonth(s string) (domain.Period, bool) {
	m := yearMonthPattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Period{}, false
	}
	return yearMonth(m[1], m[2])
}

func matchNumericYearMonth(s string) (domain.Period, bool) {
	m := numYearMonthPat.FindStringSubmatch(s)
	if m == nil {
		return domain.Period{}, false
	}
	return yearMonth(m[1], m[2])
}

func matchQuarter(s string) (domain.Period, bool) {
	m := cnQuarterPattern.FindStringSubmatch(s)
	if m == nil {
		m = qQuarterPattern.FindStringSubmatch(s)
	}
	if m == nil {
		return domain.Period{}, false
	}
	year, _ := strconv.Atoi(m[1])
	q, ok := chineseQuarterNums[m[2]]
	if !ok {
		q, _ = strconv.Atoi(m[2])
	}
	if !validYear(year) || q < 1 || q > 4 {
		return domain.Period{}, false
	}
	return domain.QuarterPeriod(year, q), true
}

func matchFullDate(s string) (domain.Period, bool) {
	m := fullDatePattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Period{}, false
	}
	return yearMonth(m[1], m[2])
}

// matchBareYear treats a lone year as the full fiscal year, i.e. December/Q4.
func matchBareYear(s string) (domain.Period, bool) {
	m := bareYearPattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Period{}, false
	}
	year, _ := strconv.Atoi(m[1])
	if !validYear(year) {
		return domain.Period{}, false
	}
	return domain.NewPeriod(year, 12), true
}

func matchExcelSerial(s string) (domain.Period, bool) {
	if !allDigitsPattern.MatchString(s) {
		return domain.Period{}, false
	}
	serial, err := strconv.Atoi(s)
	if err != nil || serial < 1 || serial > maxExcelSerial {
		return domain.Period{}, false
	}
	return fromTime(SerialToTime(serial))
}

// matchGenericDate never reads an all-digit value: those are serials, and
// the serial rung has already rejected them.
func matchGenericDate(s string) (domain.Period, bool) {
	if allDigitsPattern.MatchString(s) {
		return domain.Period{}, false
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return fromTime(t)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t)
		}
	}
	return domain.Period{}, false
}

// SerialToTime converts an Excel 1900-system serial day number to a date.
func SerialToTime(serial int) time.Time {
	return excelEpoch.AddDate(0, 0, serial)
}

func yearMonth(ys, ms string) (domain.Period, bool) {
	year, _ := strconv.Atoi(ys)
	month, _ := strconv.Atoi(ms)
	if !validYear(year) || month < 1 || month > 12 {
		return domain.Period{}, false
	}
	return domain.NewPeriod(year, month), true
}

func fromTime(t time.Time) (domain.Period, bool) {
	if t.IsZero() || !validYear(t.Year()) {
		return domain.Period{}, false
	}
	return domain.PeriodOf(t), true
}

func validYear(y int) bool {
	return y >= minYear && y <= maxYear
}

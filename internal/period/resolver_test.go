package period

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
	"finsight/internal/workbook"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
}

var clockPeriod = domain.Period{Year: 2026, Month: 10, Quarter: 4}

func TestResolve_YearMonth_AllValid(t *testing.T) {
	r := NewResolver(fixedClock())
	for year := minYear; year <= maxYear; year++ {
		for month := 1; month <= 12; month++ {
			got := r.Resolve(workbook.StringValue(fmt.Sprintf("%d-%02d", year, month)))
			want := domain.Period{Year: year, Month: month, Quarter: (month + 2) / 3}
			if got != want {
				t.Fatalf("%d-%02d: got %+v, want %+v", year, month, got, want)
			}
		}
	}
}

func TestResolve_YearMonthVariants(t *testing.T) {
	r := NewResolver(fixedClock())
	tests := []struct {
		in   string
		want domain.Period
	}{
		{"2024年6月", domain.Period{Year: 2024, Month: 6, Quarter: 2}},
		{"2024年12月", domain.Period{Year: 2024, Month: 12, Quarter: 4}},
		{"2024/3", domain.Period{Year: 2024, Month: 3, Quarter: 1}},
		{"202407", domain.Period{Year: 2024, Month: 7, Quarter: 3}},
		{" 2023-11 ", domain.Period{Year: 2023, Month: 11, Quarter: 4}},
		{"2024-06-15", domain.Period{Year: 2024, Month: 6, Quarter: 2}},
		{"2024/6/30", domain.Period{Year: 2024, Month: 6, Quarter: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(workbook.StringValue(tt.in)))
		})
	}
}

func TestResolve_Quarter(t *testing.T) {
	r := NewResolver(fixedClock())
	for _, year := range []int{1900, 1999, 2024, 2100} {
		for q := 1; q <= 4; q++ {
			got := r.Resolve(workbook.StringValue(fmt.Sprintf("%d年第%d季度", year, q)))
			assert.Equal(t, domain.Period{Year: year, Month: q * 3, Quarter: q}, got)
		}
	}
}

func TestResolve_QuarterVariants(t *testing.T) {
	r := NewResolver(fixedClock())
	assert.Equal(t, domain.Period{Year: 2024, Month: 6, Quarter: 2}, r.Resolve(workbook.StringValue("2024年第二季度")))
	assert.Equal(t, domain.Period{Year: 2024, Month: 9, Quarter: 3}, r.Resolve(workbook.StringValue("2024Q3")))
	assert.Equal(t, domain.Period{Year: 2023, Month: 12, Quarter: 4}, r.Resolve(workbook.StringValue("2023-Q4")))
	assert.Equal(t, domain.Period{Year: 2024, Month: 3, Quarter: 1}, r.Resolve(workbook.StringValue("2024年度第1季度报表")))
}

func TestResolve_QuarterOutOfRangeFallsBack(t *testing.T) {
	r := NewResolver(fixedClock())
	_, ok := r.Match(workbook.StringValue("2024年第5季度"))
	assert.False(t, ok)
	assert.Equal(t, clockPeriod, r.Resolve(workbook.StringValue("2024年第5季度")))
}

func TestResolve_BareYear(t *testing.T) {
	r := NewResolver(fixedClock())
	want := domain.Period{Year: 2024, Month: 12, Quarter: 4}

	assert.Equal(t, want, r.Resolve(workbook.StringValue("2024")))
	assert.Equal(t, want, r.Resolve(workbook.StringValue("2024年")))
	assert.Equal(t, want, r.Resolve(workbook.StringValue("2024年度")))
	assert.Equal(t, want, r.Resolve(workbook.NumberValue(2024)))
}

func TestResolve_ExcelSerial(t *testing.T) {
	r := NewResolver(fixedClock())

	p, ok := r.Match(workbook.NumberValue(44927))
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2023, Month: 1, Quarter: 1}, p)

	p, ok = r.Match(workbook.StringValue("45473"))
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2024, Month: 6, Quarter: 2}, p)

	for _, serial := range []int{2, 100, 36526, 60000, maxExcelSerial} {
		p, ok := r.Match(workbook.NumberValue(float64(serial)))
		require.True(t, ok, "serial %d", serial)
		assert.GreaterOrEqual(t, p.Year, minYear)
		assert.LessOrEqual(t, p.Year, maxYear)
	}
}

func TestResolve_ExcelSerialOutOfRangeFallsBack(t *testing.T) {
	r := NewResolver(fixedClock())
	// serial 1 is 1899-12-31, outside the accepted year range
	for _, v := range []float64{0, 1, maxExcelSerial + 1, 100000, 1500000, 20240615} {
		_, ok := r.Match(workbook.NumberValue(v))
		assert.False(t, ok, "value %v", v)
		assert.Equal(t, clockPeriod, r.Resolve(workbook.NumberValue(v)))
	}
}

func TestResolve_DigitStringsOutsideSerialWindowFallBack(t *testing.T) {
	r := NewResolver(fixedClock())
	for _, s := range []string{"73051", "20240615", "19991231"} {
		p, rule := Trace(workbook.StringValue(s))
		assert.Empty(t, rule, "value %s resolved to %v", s, p)
		assert.Equal(t, clockPeriod, r.Resolve(workbook.StringValue(s)))
	}
}

func TestResolve_NumericDecimalIsNotYearMonth(t *testing.T) {
	r := NewResolver(fixedClock())
	for _, v := range []float64{2024.1, 2024.06, 2024.12} {
		_, ok := r.Match(workbook.NumberValue(v))
		assert.False(t, ok, "value %v", v)
		assert.Equal(t, clockPeriod, r.Resolve(workbook.NumberValue(v)))
	}

	// typed as text the dot still separates year and month
	assert.Equal(t, domain.Period{Year: 2024, Month: 10, Quarter: 4}, r.Resolve(workbook.StringValue("2024.10")))
	assert.Equal(t, domain.Period{Year: 2024, Month: 7, Quarter: 3}, r.Resolve(workbook.NumberValue(202407)))
}

func TestResolve_LargeAmountIsNotADate(t *testing.T) {
	r := NewResolver(fixedClock())
	assert.Equal(t, clockPeriod, r.Resolve(workbook.NumberValue(12345678.9)))
	assert.Equal(t, clockPeriod, r.Resolve(workbook.StringValue("1000000")))
}

func TestResolve_DateCell(t *testing.T) {
	r := NewResolver(fixedClock())
	d := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.Period{Year: 2024, Month: 8, Quarter: 3}, r.Resolve(workbook.DateValue(d)))

	old := time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, clockPeriod, r.Resolve(workbook.DateValue(old)))
}

func TestResolve_GenericDate(t *testing.T) {
	r := NewResolver(fixedClock())
	assert.Equal(t, clockPeriod, r.Resolve(workbook.StringValue("20240615")))
	assert.Equal(t, domain.Period{Year: 2023, Month: 2, Quarter: 1}, r.Resolve(workbook.StringValue("2023-02-01T08:00:00Z")))

	p, ok := r.Match(workbook.StringValue("1/2/2024"))
	require.True(t, ok)
	assert.Equal(t, 2024, p.Year)
}

func TestResolve_EmptyAndGarbageFallBack(t *testing.T) {
	r := NewResolver(fixedClock())
	for _, v := range []workbook.Value{
		{},
		workbook.StringValue("   "),
		workbook.StringValue("本期"),
		workbook.StringValue("1899-12"),
		workbook.StringValue("2101-01"),
		workbook.StringValue("2024-13"),
		workbook.BoolValue(true),
	} {
		_, ok := r.Match(v)
		assert.False(t, ok, "value %+v", v)
		assert.Equal(t, clockPeriod, r.Resolve(v))
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(fixedClock())
	for _, in := range []any{"2024-06", "2024年第4季度", 44927.0, "2024", nil, "garbage"} {
		v := workbook.Of(in)
		assert.Equal(t, r.Resolve(v), r.Resolve(v))
	}
}

func TestTrace_RuleNames(t *testing.T) {
	tests := []struct {
		in   workbook.Value
		rule string
	}{
		{workbook.StringValue("2024-06"), "year-month"},
		{workbook.StringValue("2024年第4季度"), "year-quarter"},
		{workbook.StringValue("2024"), "bare-year"},
		{workbook.NumberValue(44927), "excel-serial"},
		{workbook.StringValue("1/2/2024"), "generic-date"},
		{workbook.StringValue("20240615"), ""},
		{workbook.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), "date-cell"},
		{workbook.StringValue("n/a"), ""},
	}
	for _, tt := range tests {
		_, rule := Trace(tt.in)
		assert.Equal(t, tt.rule, rule, "input %+v", tt.in)
	}
}

func TestSerialToTime(t *testing.T) {
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), SerialToTime(44927))
	assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), SerialToTime(2))
}

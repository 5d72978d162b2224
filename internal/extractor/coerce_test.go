package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finsight/internal/workbook"
)

func TestNumberOrDefault(t *testing.T) {
	tests := []struct {
		name string
		in   workbook.Value
		want float64
	}{
		{"number", workbook.NumberValue(12.5), 12.5},
		{"plain text", workbook.StringValue("42"), 42},
		{"thousands", workbook.StringValue("1,234,567.89"), 1234567.89},
		{"full-width comma", workbook.StringValue("1，000"), 1000},
		{"currency", workbook.StringValue("¥ 3,000元"), 3000},
		{"parenthesised negative", workbook.StringValue("(1,500)"), -1500},
		{"full-width parentheses", workbook.StringValue("（200）"), -200},
		{"minus sign", workbook.StringValue("-75"), -75},
		{"percent", workbook.StringValue("13%"), 0.13},
		{"ten thousands", workbook.StringValue("2.5万"), 25000},
		{"dash placeholder", workbook.StringValue("--"), 0},
		{"garbage", workbook.StringValue("n/a"), 0},
		{"empty", workbook.Value{}, 0},
		{"bool", workbook.BoolValue(true), 0},
		{"date", workbook.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NumberOrDefault(tt.in), 1e-9)
		})
	}
}

func TestIntOrDefault(t *testing.T) {
	assert.Equal(t, 12, IntOrDefault(workbook.NumberValue(11.6)))
	assert.Equal(t, 3, IntOrDefault(workbook.StringValue(" 3 ")))
	assert.Equal(t, 0, IntOrDefault(workbook.StringValue("none")))
}

func TestTextOrDefault(t *testing.T) {
	assert.Equal(t, "abc", TextOrDefault(workbook.StringValue("  abc ")))
	assert.Equal(t, "1500", TextOrDefault(workbook.NumberValue(1500)))
	assert.Equal(t, "", TextOrDefault(workbook.Value{}))
}

func TestDateText(t *testing.T) {
	assert.Equal(t, "2020-01-01", DateText(workbook.NumberValue(43831)))
	assert.Equal(t, "2024-06-15", DateText(workbook.DateValue(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "2019年3月", DateText(workbook.StringValue("2019年3月")))
	assert.Equal(t, "80000", DateText(workbook.NumberValue(80000)))
	assert.Equal(t, "12.5", DateText(workbook.NumberValue(12.5)))
}

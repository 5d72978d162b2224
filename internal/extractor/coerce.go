package extractor

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"finsight/internal/period"
	"finsight/internal/workbook"
)

var numberNoise = strings.NewReplacer(
	",", "", "，", "", " ", "", "\u00a0", "",
	"¥", "", "￥", "", "$", "", "元", "",
)

// NumberOrDefault coerces a cell to a float. Numeric cells are returned as
// is; text is read leniently (thousands separators, currency marks,
// "(1,000)" negatives, "%" and "万" suffixes). Anything else is 0.
func NumberOrDefault(v workbook.Value) float64 {
	switch v.Kind {
	case workbook.KindNumber:
		return v.Num
	case workbook.KindString:
		if n, ok := parseNumber(v.Str); ok {
			return n
		}
	}
	return 0
}

// IntOrDefault coerces a cell to the nearest integer, or 0.
func IntOrDefault(v workbook.Value) int {
	return int(math.Round(NumberOrDefault(v)))
}

// TextOrDefault returns the trimmed text of a cell, or "" when empty.
func TextOrDefault(v workbook.Value) string {
	return v.String()
}

// DateText renders a date-like cell as 2006-01-02. Plain numbers in the
// Excel serial range are converted; other cells fall back to their text.
func DateText(v workbook.Value) string {
	if v.Kind == workbook.KindNumber && v.Num == math.Trunc(v.Num) && v.Num >= 1 && v.Num <= 73050 {
		return period.SerialToTime(int(v.Num)).Format("2006-01-02")
	}
	return TextOrDefault(v)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" {
		return 0, false
	}

	neg := false
	if (strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")) ||
		(strings.HasPrefix(s, "（") && strings.HasSuffix(s, "）")) {
		neg = true
		s = strings.TrimSuffix(strings.TrimSuffix(s, ")"), "）")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "("), "（")
	}

	s = numberNoise.Replace(s)
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "%"):
		scale = 0.01
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "万"):
		scale = 10000
		s = strings.TrimSuffix(s, "万")
	}

	n, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n * scale, true
}

// Package workbook gives the import pipeline random access to the typed
// cells of an uploaded spreadsheet's first sheet.
package workbook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"finsight/internal/domain"
)

// Workbook is a read-only view of one sheet addressed by A1-style cell names.
type Workbook interface {
	SheetName() string
	Cell(addr string) Value
	MaxRow() int
}

// ExcelWorkbook is the excelize-backed Workbook returned by Open.
type ExcelWorkbook struct {
	f        *excelize.File
	sheet    string
	maxRow   int
	date1904 bool
	dates    map[int]bool
}

// Open reads an xlsx byte buffer and selects its first sheet. The returned
// workbook holds the whole file in memory; callers should Close it.
func Open(data []byte) (*ExcelWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewMalformedInputError(err)
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		_ = f.Close()
		return nil, domain.NewMalformedInputError(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, domain.NewMalformedInputError(fmt.Errorf("reading sheet %q: %w", sheet, err))
	}

	w := &ExcelWorkbook{
		f:      f,
		sheet:  sheet,
		maxRow: len(rows),
		dates:  make(map[int]bool),
	}
	if props, perr := f.GetWorkbookProps(); perr == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}
	return w, nil
}

// Close releases the underlying file.
func (w *ExcelWorkbook) Close() error {
	return w.f.Close()
}

func (w *ExcelWorkbook) SheetName() string { return w.sheet }

func (w *ExcelWorkbook) MaxRow() int { return w.maxRow }

// Cell returns the typed value at addr. Unreadable or blank cells are empty.
func (w *ExcelWorkbook) Cell(addr string) Value {
	raw, err := w.f.GetCellValue(w.sheet, addr, excelize.Options{RawCellValue: true})
	if err != nil || strings.TrimSpace(raw) == "" {
		return Value{}
	}

	typ, err := w.f.GetCellType(w.sheet, addr)
	if err != nil {
		return StringValue(raw)
	}

	switch typ {
	case excelize.CellTypeBool:
		return BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return DateValue(t)
		}
		return StringValue(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return StringValue(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return StringValue(raw)
	}
	if w.isDateFormatted(addr) {
		if t, terr := excelize.ExcelDateToTime(n, w.date1904); terr == nil {
			return DateValue(t)
		}
	}
	return NumberValue(n)
}

// isDateFormatted reports whether the number format of the cell's style
// renders a date. Results are cached per style index.
func (w *ExcelWorkbook) isDateFormatted(addr string) bool {
	styleID, err := w.f.GetCellStyle(w.sheet, addr)
	if err != nil || styleID == 0 {
		return false
	}
	if d, ok := w.dates[styleID]; ok {
		return d
	}

	isDate := false
	if style, err := w.f.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt)
		if !isDate && style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	w.dates[styleID] = isDate
	return isDate
}

func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode detects y/d date tokens outside quoted literals and
// bracketed sections of a custom number format.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y' || r == 'd' || r == '年' || r == '日':
			return true
		}
	}
	return false
}

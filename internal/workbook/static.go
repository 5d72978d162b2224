package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Static is an in-memory Workbook keyed by cell address.
type Static struct {
	Name  string
	Cells map[string]Value
}

// NewStatic builds a Static sheet from raw Go values. Strings, numbers,
// time.Time and bools are typed like their spreadsheet counterparts.
func NewStatic(cells map[string]any) *Static {
	s := &Static{Name: "Sheet1", Cells: make(map[string]Value, len(cells))}
	for addr, v := range cells {
		s.Cells[strings.ToUpper(addr)] = Of(v)
	}
	return s
}

func (s *Static) SheetName() string { return s.Name }

func (s *Static) Cell(addr string) Value {
	return s.Cells[strings.ToUpper(addr)]
}

// MaxRow returns the highest row number holding a value.
func (s *Static) MaxRow() int {
	last := 0
	for addr := range s.Cells {
		if _, row, err := excelize.CellNameToCoordinates(addr); err == nil && row > last {
			last = row
		}
	}
	return last
}

package boq

import (
	"bytes"

	"github.com/extrame/xls"
)

// biffWorkbook abstracts a decoded legacy (BIFF) workbook so the sheet
// selection and row walk are independent of the reader library.
type biffWorkbook interface {
	NumSheets() int
	Sheet(i int) biffSheet
}

type biffSheet interface {
	Name() string
	Visible() bool
	MaxRow() int
	Row(i int) biffRow
}

type biffRow interface {
	FirstCol() int
	LastCol() int // exclusive
	Col(j int) string
}

// decodeLegacyXLS handles the legacy binary (BIFF) family via extrame/xls.
func decodeLegacyXLS(content []byte, maxRows int) (*SheetData, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, unreadable(err)
	}
	return decodeBIFF(xlsWorkbook{wb}, maxRows)
}

// decodeBIFF selects one sheet and reduces it to the uniform row form.
//
// Sheet selection: the first sheet flagged visible, falling back to the
// first sheet when none is marked visible. The BIFF reader does not expose
// per-row hidden flags, so every reported row is treated as visible; the
// emptiness filter still applies.
func decodeBIFF(wb biffWorkbook, maxRows int) (*SheetData, error) {
	if wb.NumSheets() == 0 {
		return nil, unreadableMsg("workbook contains no sheets")
	}

	var sheet biffSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if ws := wb.Sheet(i); ws != nil && ws.Visible() {
			sheet = ws
			break
		}
	}
	if sheet == nil {
		sheet = wb.Sheet(0)
	}
	if sheet == nil {
		return nil, unreadableMsg("workbook sheet could not be read")
	}

	data := &SheetData{SheetName: sheet.Name()}
	for i := 0; i <= sheet.MaxRow(); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		rowNum := i + 1

		var cells []Cell
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells = append(cells, newCell(j+1, rowNum, parseCellValue(row.Col(j))))
		}
		if !keepRow(data, Row{RowIndex: rowNum, Cells: cells}) {
			continue
		}
		if maxRows > 0 && len(data.Rows) >= maxRows {
			break
		}
	}

	data.RowCount = len(data.Rows)
	return data, nil
}

// xlsWorkbook adapts extrame/xls to the biffWorkbook interface.
type xlsWorkbook struct {
	wb *xls.WorkBook
}

func (w xlsWorkbook) NumSheets() int { return w.wb.NumSheets() }

func (w xlsWorkbook) Sheet(i int) biffSheet {
	ws := w.wb.GetSheet(i)
	if ws == nil {
		return nil
	}
	return xlsSheet{ws}
}

type xlsSheet struct {
	ws *xls.WorkSheet
}

func (s xlsSheet) Name() string  { return s.ws.Name }
func (s xlsSheet) Visible() bool { return s.ws.Visibility == xls.WorkSheetVisible }
func (s xlsSheet) MaxRow() int   { return int(s.ws.MaxRow) }

func (s xlsSheet) Row(i int) biffRow {
	row := s.ws.Row(i)
	if row == nil {
		return nil
	}
	return xlsRow{row}
}

type xlsRow struct {
	row *xls.Row
}

func (r xlsRow) FirstCol() int    { return r.row.FirstCol() }
func (r xlsRow) LastCol() int     { return r.row.LastCol() }
func (r xlsRow) Col(j int) string { return r.row.Col(j) }

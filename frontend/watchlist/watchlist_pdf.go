package watchlist

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"watchlist/models"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Symbol", 38, "L"},
	{"Name", 92, "L"},
	{"Price", 34, "R"},
	{"Prev Close", 34, "R"},
	{"Change", 30, "R"},
	{"Change %", 30, "R"},
}

// renderWatchlistPDF prints the watchlist as a landscape table. Core PDF fonts
// have no rupee glyph, so amounts are printed without a currency prefix.
func renderWatchlistPDF(records []models.StockRecord, printedAt time.Time) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no stocks to export")
	}
	view := BuildTableView(records, "")

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Stock Watchlist", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Stock Watchlist", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d stocks, printed %s", len(records), printedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range view.Rows {
		setChangeColor(pdf, "")
		cells := []string{row.Symbol, tr(row.Name), row.Price, row.PreviousClose}
		for i, text := range cells {
			pdf.CellFormat(pdfColumns[i].width, 7, text, "1", 0, pdfColumns[i].align, false, 0, "")
		}
		setChangeColor(pdf, row.ChangeClass)
		pdf.CellFormat(pdfColumns[4].width, 7, row.Change, "1", 0, pdfColumns[4].align, false, 0, "")
		pdf.CellFormat(pdfColumns[5].width, 7, row.ChangePercent, "1", 0, pdfColumns[5].align, false, 0, "")
		pdf.Ln(-1)
	}
	setChangeColor(pdf, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func setChangeColor(pdf *gofpdf.Fpdf, class string) {
	switch class {
	case classPositive:
		pdf.SetTextColor(22, 128, 61)
	case classNegative:
		pdf.SetTextColor(185, 28, 28)
	default:
		pdf.SetTextColor(0, 0, 0)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/pkg/core/apperror"
)

const (
	pageMargin = 15.0
	lineHeight = 7.0
)

// WritePDF renders a one-page A4 summary. Core PDF fonts have no naira glyph,
// so amounts use the ISO code.
func WritePDF(w io.Writer, r *Report) error {
	cur := r.Money()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle("Tax Summary", false)
	pdf.SetSubject(fmt.Sprintf("Table %s", r.TableName), false)
	pdf.SetCreator("TaxWise NG", false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentW, 12, "Your Tax Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Generated %s, report %s", r.GeneratedAt.Format("2 Jan 2006 15:04 MST"), r.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	stats := r.Stats()
	cardW := contentW / 2
	for i, s := range stats {
		if s.Highlight {
			pdf.SetFillColor(0, 0, 0)
			pdf.SetTextColor(255, 255, 255)
		} else {
			pdf.SetFillColor(242, 242, 242)
			pdf.SetTextColor(0, 0, 0)
		}
		x := pageMargin + float64(i%2)*cardW
		y := pdf.GetY()
		pdf.SetXY(x, y)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(cardW-2, 6, s.Label, "", 2, "L", true, 0, "")
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(cardW-2, 10, cur.FormatCode(s.Amount), "", 0, "L", true, 0, "")
		if i%2 == 0 {
			pdf.SetXY(x+cardW, y)
		} else {
			pdf.SetXY(pageMargin, y+18)
		}
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Effective Tax Rate", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(contentW, 12, r.EffectiveRate(), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetFillColor(242, 242, 242)
	pdf.MultiCell(contentW, 6, pdfText(r.Insight), "", "C", true)
	pdf.Ln(4)

	writeBreakdownTable(pdf, r, cur, contentW)
	writeDistribution(pdf, r, cur, contentW)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(contentW, 4, Disclaimer, "", "C", false)

	if err := pdf.Output(w); err != nil {
		return apperror.Wrap(err, apperror.CodeExportFailed, "failed to render pdf")
	}
	return nil
}

func writeBreakdownTable(pdf *fpdf.Fpdf, r *Report, cur money.Currency, width float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 8, "How It's Calculated", "", 1, "L", false, 0, "")

	if len(r.Result.Breakdown) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(width, lineHeight, "No taxable income.", "", 1, "L", false, 0, "")
		return
	}

	cols := []float64{width * 0.25, width * 0.30, width * 0.15, width * 0.30}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Bracket", "Taxable", "Rate", "Tax"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(cols[i], lineHeight, h, "", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for n, c := range r.Result.Breakdown {
		fill := n%2 == 1
		pdf.SetFillColor(242, 242, 242)
		pdf.CellFormat(cols[0], lineHeight, pdfText(c.Label), "", 0, "L", fill, 0, "")
		pdf.CellFormat(cols[1], lineHeight, cur.FormatCode(c.TaxableAmount), "", 0, "R", fill, 0, "")
		pdf.CellFormat(cols[2], lineHeight, money.FormatRate(c.Rate), "", 0, "R", fill, 0, "")
		pdf.CellFormat(cols[3], lineHeight, cur.FormatCode(c.Tax), "", 1, "R", fill, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(cols[0]+cols[1]+cols[2], lineHeight, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(cols[3], lineHeight, cur.FormatCode(r.Result.TotalTax), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func writeDistribution(pdf *fpdf.Fpdf, r *Report, cur money.Currency, width float64) {
	if len(r.Chart) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 8, "Tax Distribution by Bracket", "", 1, "L", false, 0, "")

	labelW := width * 0.2
	valueW := width * 0.3
	barMax := width - labelW - valueW

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range r.Chart {
		shade := 153 * i / len(r.Chart)
		share, _ := s.SharePercent.Float64()
		pdf.CellFormat(labelW, 6, pdfText(s.Label), "", 0, "L", false, 0, "")
		x, y := pdf.GetX(), pdf.GetY()
		pdf.SetFillColor(shade, shade, shade)
		pdf.Rect(x, y+1, barMax*share/100, 4, "F")
		pdf.SetX(x + barMax)
		pdf.CellFormat(valueW, 6, fmt.Sprintf("%s  %s", money.FormatPercent(s.SharePercent, 1), cur.FormatCode(s.Tax)), "", 1, "R", false, 0, "")
	}
}

var pdfReplacer = strings.NewReplacer("₦", "NGN ", "’", "'", "—", "-")

// pdfText replaces characters the core fonts cannot encode
func pdfText(s string) string {
	return pdfReplacer.Replace(s)
}

package formatter

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// Core font; summaries are plain ASCII so no TTF is bundled
	pdfFontName = "Helvetica"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (pf *PDFFormatter) Format(summary *CaseSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(summary.Title(), false)
	pdf.AddPage()

	pdf.SetFont(pdfFontName, "B", 18)
	pdf.Cell(0, 10, summary.Title())
	pdf.Ln(12)

	if len(summary.Sections) == 0 {
		pdf.SetFont(pdfFontName, "", 12)
		pdf.Cell(0, 8, "No records stored.")
	}

	for _, s := range summary.Sections {
		pdf.SetFont(pdfFontName, "B", 14)
		pdf.Cell(0, 8, s.Title)
		pdf.Ln(9)

		pdf.SetFont(pdfFontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		for _, line := range s.Lines {
			pdf.MultiCell(0, lineHeight*1.5, line, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}

package evaluate

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDFReport renders the evaluation summary and per-question outcomes
// as a simple one-column PDF, one line per question. Layout is intentionally
// minimal; the JSON artifacts remain the machine-readable record.
func WritePDFReport(rows []Row, summary Summary, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Retriever evaluation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("K = %.0f", summary.K), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Hit@K (URL): %.3f", summary.HitAtKURL), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("MRR@K (URL): %.3f", summary.MRRAtKURL), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("ContainsAll@K: %.3f", summary.ContainsAllAtK), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Questions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		status := "MISS"
		if row.ContainsAllAtK == 1.0 || (row.HitAtKURL != nil && *row.HitAtKURL == 1.0) {
			status = "OK"
		}
		pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", status, row.Question), "", "L", false)
		if row.Top1URL != "" {
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, "  top1: "+row.Top1URL, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}
	return pdf.OutputFileAndClose(outPath)
}

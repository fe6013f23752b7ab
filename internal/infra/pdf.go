package infra

// pdf.go — expiring-stock report generation using go-pdf/fpdf.
// Renders an A4 table with one row per item: name, category, batch code,
// units, and expiry date. The output file is saved under storagePath.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateExpiryReportPDF writes the expiring-items report and returns the
// absolute path to the generated file. storagePath is created if needed.
func GenerateExpiryReportPDF(items []model.StockItem, days int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("expiring_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "PharmStockHub", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Items expiring within %d days", days), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Generated "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.34 // item name
	col2 := contentW * 0.22 // category
	col3 := contentW * 0.16 // batch code
	col4 := contentW * 0.10 // units
	col5 := contentW * 0.18 // expiry

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Batch", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Units", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Expires", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for i := range items {
		item := &items[i]

		name := truncate(item.Name, 38)
		category := ""
		if item.Category != nil {
			category = item.Category.Name
		}
		batch := ""
		if item.UniqueCode != nil {
			batch = *item.UniqueCode
		}
		expiry := ""
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format("02/01/2006")
		}

		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, category, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, batch, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, expiry, "", 1, "R", false, 0, "")
	}

	if len(items) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "No items expire in this window.", "", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Total: %d item(s)", len(items)), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// truncate shortens s to at most max characters, counting runes so a
// multi-byte name is never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

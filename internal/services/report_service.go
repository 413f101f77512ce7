package services

import (
	"bytes"
	"context"
	"fmt"

	"gametrack-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders printable summaries of the deposit queue.
type ReportService struct {
	deposits DepositStore
}

func NewReportService(deposits DepositStore) *ReportService {
	return &ReportService{deposits: deposits}
}

// DepositReport renders the current deposit queue as a PDF.
func (s *ReportService) DepositReport(ctx context.Context) ([]byte, error) {
	records, err := s.deposits.List(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Game Tracker - Deposit Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Game Key", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Cash", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Picker", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "To Bank", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "At Bank", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var total float64
	pending := 0
	for _, d := range records {
		picker := ""
		if d.Picker != nil {
			picker = *d.Picker
		}
		toBank := "-"
		if d.GoingToBank != nil {
			toBank = d.GoingToBank.In(timeutil.Central).Format("01/02 15:04")
		}
		atBank := "-"
		if d.DroppedAtBank != nil {
			atBank = d.DroppedAtBank.In(timeutil.Central).Format("01/02 15:04")
		} else {
			pending++
			total += d.CashHand
		}

		pdf.CellFormat(70, 7, d.Key, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", d.CashHand), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, picker, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, toBank, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, atBank, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 8, fmt.Sprintf("Pending deposits: %d    Pending cash: %.2f", pending, total), "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package services

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
)

// ReportData bundles everything the PDF report renders for one session.
type ReportData struct {
	Session        *models.AssessmentSession
	Report         *scoring.Report
	Classification *scoring.Classification
	Pareto         *scoring.ParetoAnalysis
}

// GenerateReportPDF renders the assessment report as a PDF document.
func GenerateReportPDF(data ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	writeHeader(pdf, data.Session)
	writeSummary(pdf, data.Session, data.Report)
	writeProcessTable(pdf, data.Report)
	writeClassification(pdf, data.Classification)
	writePareto(pdf, data.Pareto)
	writeRecommendations(pdf, data.Session)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *fpdf.Fpdf, s *models.AssessmentSession) {
	if s.LogoPath != nil {
		if _, err := os.Stat(*s.LogoPath); err == nil {
			pdf.ImageOptions(*s.LogoPath, 160, 10, 35, 0, false, fpdf.ImageOptions{}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Digital Maturity Assessment", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, s.CompanyName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	when := s.CreatedAt
	if s.ClosedAt != nil {
		when = *s.ClosedAt
	}
	pdf.CellFormat(0, 5, when.Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeSummary(pdf *fpdf.Fpdf, s *models.AssessmentSession, r *scoring.Report) {
	pdf.SetFont("Helvetica", "", 10)
	if s.Sector != nil {
		pdf.CellFormat(0, 6, "Sector: "+*s.Sector, "", 1, "L", false, 0, "")
	}
	if s.ContactPerson != nil {
		pdf.CellFormat(0, 6, "Contact: "+*s.ContactPerson, "", 1, "L", false, 0, "")
	}
	if s.PerformedBy != nil {
		pdf.CellFormat(0, 6, "Performed by: "+*s.PerformedBy, "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Overall maturity: "+ratingText(r.FinalRate), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func writeProcessTable(pdf *fpdf.Fpdf, r *scoring.Report) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Process ratings", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Process", "1", 0, "L", true, 0, "")
	for _, cat := range models.CategoryOrder {
		pdf.CellFormat(25, 7, string(cat), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(20, 7, "Rating", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range r.Processes {
		pdf.CellFormat(70, 6, p.Process, "1", 0, "L", false, 0, "")
		for _, cat := range models.CategoryOrder {
			pdf.CellFormat(25, 6, ratingText(p.Categories[string(cat)]), "1", 0, "C", false, 0, "")
		}
		pdf.CellFormat(20, 6, ratingText(p.Rating), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func writeClassification(pdf *fpdf.Fpdf, c *scoring.Classification) {
	sections := []struct {
		title string
		rows  []scoring.ActivityReport
	}{
		{"Strengths", c.Strengths},
		{"Weaknesses", c.Weaknesses},
		{"Critical areas", c.Critical},
	}

	for _, sec := range sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, sec.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		if len(sec.rows) == 0 {
			pdf.CellFormat(0, 6, "None", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			continue
		}
		for _, row := range sec.rows {
			line := fmt.Sprintf("%s / %s: %s", row.Process, row.Activity, ratingText(row.Average))
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func writePareto(pdf *fpdf.Fpdf, p *scoring.ParetoAnalysis) {
	if p == nil || (len(p.ByProcess) == 0 && len(p.ByDomain) == 0) {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Improvement priorities (Pareto)", "", 1, "L", false, 0, "")

	writeParetoTable(pdf, "Process", p.ByProcess)
	writeParetoTable(pdf, "Domain", p.ByDomain)
	pdf.Ln(2)
}

func writeParetoTable(pdf *fpdf.Fpdf, label string, entries []scoring.ParetoEntry) {
	if len(entries) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(80, 7, label, "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Gap", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Cumulative %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Critical", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		critical := ""
		if e.IsCritical {
			critical = "yes"
		}
		pdf.CellFormat(80, 6, e.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", e.Gap), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f%%", e.Cumulative), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, critical, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
}

func writeRecommendations(pdf *fpdf.Fpdf, s *models.AssessmentSession) {
	if s.Recommendations == nil && s.ParetoRecommendations == nil {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if s.Recommendations != nil {
		pdf.MultiCell(0, 5, *s.Recommendations, "", "L", false)
		pdf.Ln(2)
	}
	if s.ParetoRecommendations != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Priority actions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, *s.ParetoRecommendations, "", "L", false)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.Ln(4)
	pdf.CellFormat(0, 5, "Generated "+time.Now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func ratingText(r scoring.Rating) string {
	if !r.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

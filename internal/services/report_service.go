package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/models"
)

type ReportService struct {
	config *config.Config
}

func NewReportService(cfg *config.Config) *ReportService {
	return &ReportService{config: cfg}
}

// GenerateProjectReport renders a project summary and its activity log
// as a PDF.
func (s *ReportService) GenerateProjectReport(project *models.Project, logs []models.ProjectLog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 10, "PROJECT REPORT", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 8, project.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "SUMMARY")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 5, "Type: "+string(project.Type))
	pdf.Ln(5)
	pdf.Cell(190, 5, "Status: "+string(project.Status))
	pdf.Ln(5)
	if project.Brand != "" {
		pdf.Cell(190, 5, "Brand: "+project.Brand)
		pdf.Ln(5)
	}
	if project.StartDate != nil {
		pdf.Cell(190, 5, "Start: "+project.StartDate.Format("January 2, 2006"))
		pdf.Ln(5)
	}
	if project.DueDate != nil {
		pdf.Cell(190, 5, "Due: "+project.DueDate.Format("January 2, 2006"))
		pdf.Ln(5)
	}
	if project.Assignee != nil {
		pdf.Cell(190, 5, "Assignee: "+project.Assignee.DisplayName)
		pdf.Ln(5)
	}
	switch project.Type {
	case models.ProjectTypeVideo:
		if project.VideoPriority != "" {
			pdf.Cell(190, 5, "Priority: "+project.VideoPriority)
			pdf.Ln(5)
		}
		if project.VideoPurpose != "" {
			pdf.Cell(190, 5, "Purpose: "+project.VideoPurpose)
			pdf.Ln(5)
		}
	case models.ProjectTypeGraphic:
		if project.GraphicJobType != "" {
			pdf.Cell(190, 5, "Job Type: "+project.GraphicJobType)
			pdf.Ln(5)
		}
	}
	pdf.Ln(3)

	if project.Description != "" {
		pdf.MultiCell(190, 5, project.Description, "", "", false)
		pdf.Ln(5)
	}

	// Activity log
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "ACTIVITY LOG")
	pdf.Ln(8)

	if len(logs) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(190, 5, "No activity recorded.")
		pdf.Ln(5)
	}

	for _, entry := range logs {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(190, 5, entry.CreatedAt.Format("2006-01-02 15:04")+"  "+entry.Action)
		pdf.Ln(5)
		pdf.SetFont("Arial", "", 10)
		line := entry.Message
		if entry.Actor != nil {
			line += " (" + entry.Actor.DisplayName + ")"
		}
		pdf.MultiCell(190, 5, line, "", "", false)
		pdf.Ln(2)
	}

	// Footer notice
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(190, 4, fmt.Sprintf("Generated by %s on %s.", s.config.AppName,
		time.Now().Format("January 2, 2006 15:04:05 MST")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

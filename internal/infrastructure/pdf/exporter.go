// Package pdf renders a complete estimate snapshot as a downloadable
// document: project info, the line-item table grouped by category with
// subtotals and a grand total, allocations grouped by destination, and the
// scope sections. The export is a pure read of the data model.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"evergreen_estimator/internal/domain/calculations"
	"evergreen_estimator/internal/domain/entities"

	"github.com/jung-kurt/gofpdf"
)

const margin = 15.0

// brand green, the Evergreen Millwork accent color
var brandR, brandG, brandB = 16, 185, 129

// Build renders the snapshot and returns the PDF bytes.
func Build(e entities.Estimate) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.AddPage()
	pageWidth, _ := doc.GetPageSize()

	// Header
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(brandR, brandG, brandB)
	doc.CellFormat(pageWidth-2*margin, 10, "Estimate Preview", "", 1, "R", false, 0, "")

	// Logo: green circle with E, company name beside it
	y := doc.GetY() + 6
	doc.SetFillColor(brandR, brandG, brandB)
	doc.Circle(margin+8, y, 8, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(margin+5.5, y+2, "E")
	doc.SetTextColor(brandR, brandG, brandB)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin+20, y-1, "EVERGREEN")
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(margin+20, y+4, "MILLWORK")
	doc.SetY(y + 14)

	// Project info in two columns
	doc.SetFont("Helvetica", "", 10)
	left := []string{
		"Project: " + e.ProjectName,
		"Address: " + e.Address,
		"Project Type: " + string(e.ProjectType),
	}
	right := []string{
		"Client: " + e.Client,
		"Bid Date: " + e.BidDate,
		fmt.Sprintf("Buildings: %d", e.Buildings),
		fmt.Sprintf("Units: %d", e.Units),
	}
	infoTop := doc.GetY()
	for i, line := range left {
		doc.Text(margin, infoTop+float64(i)*5, line)
	}
	for i, line := range right {
		doc.Text(pageWidth/2, infoTop+float64(i)*5, line)
	}
	doc.SetY(infoTop + 25)

	writeLineItems(doc, e, pageWidth)
	writeAllocations(doc, e, pageWidth)
	writeScope(doc, e)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render estimate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from the project, falling back to the
// estimate id for unnamed drafts.
func Filename(e entities.Estimate) string {
	name := strings.TrimSpace(e.ProjectName)
	if name == "" {
		name = e.ID
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	return "estimate_" + name + ".pdf"
}

func writeLineItems(doc *gofpdf.Fpdf, e entities.Estimate, pageWidth float64) {
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 8, "Estimate Details", "", 1, "L", false, 0, "")

	if len(e.LineItems) == 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 6, "No line items.", "", 1, "L", false, 0, "")
		return
	}

	usable := pageWidth - 2*margin
	widths := []float64{usable * 0.44, usable * 0.14, usable * 0.18, usable * 0.24}

	for _, category := range calculations.Categories(e.LineItems) {
		label := category
		if label == "" {
			label = "Uncategorized"
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.SetFillColor(brandR, brandG, brandB)
		doc.SetTextColor(255, 255, 255)
		doc.CellFormat(usable, 7, label, "1", 1, "L", true, 0, "")

		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "B", 9)
		headers := []string{"Description", "Qty", "Unit Cost", "Total"}
		aligns := []string{"L", "R", "R", "R"}
		for i, h := range headers {
			doc.CellFormat(widths[i], 6, h, "1", 0, aligns[i], false, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont("Helvetica", "", 9)
		for _, item := range e.LineItems {
			if item.Category != category {
				continue
			}
			cells := []string{
				item.Description,
				fmt.Sprintf("%g", item.Quantity),
				money(item.UnitCost),
				money(item.Total),
			}
			for i, cell := range cells {
				doc.CellFormat(widths[i], 6, cell, "1", 0, aligns[i], false, 0, "")
			}
			doc.Ln(-1)
		}

		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(widths[0]+widths[1]+widths[2], 6, "Subtotal", "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 6, money(calculations.CategorySubtotal(e.LineItems, category)), "1", 1, "R", false, 0, "")
		doc.Ln(2)
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(usable*0.76, 8, "Grand Total", "", 0, "R", false, 0, "")
	doc.SetTextColor(brandR, brandG, brandB)
	doc.CellFormat(usable*0.24, 8, money(calculations.GrandTotal(e.LineItems)), "", 1, "R", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(2)
}

func writeAllocations(doc *gofpdf.Fpdf, e entities.Estimate, pageWidth float64) {
	if len(e.Allocations) == 0 {
		return
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Allocations", "", 1, "L", false, 0, "")

	items := make(map[string]entities.LineItem, len(e.LineItems))
	for _, item := range e.LineItems {
		items[item.ID] = item
	}

	// Destinations in first-seen order
	destinations := []string{}
	seen := map[string]struct{}{}
	for _, a := range e.Allocations {
		if _, ok := seen[a.AllocatedTo]; !ok {
			seen[a.AllocatedTo] = struct{}{}
			destinations = append(destinations, a.AllocatedTo)
		}
	}

	usable := pageWidth - 2*margin
	widths := []float64{usable * 0.52, usable * 0.2, usable * 0.28}

	for _, dest := range destinations {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(usable, 7, dest, "1", 1, "L", false, 0, "")

		doc.SetFont("Helvetica", "", 9)
		destTotal := 0.0
		for _, a := range e.Allocations {
			if a.AllocatedTo != dest {
				continue
			}
			description := a.LineItemID
			if item, ok := items[a.LineItemID]; ok {
				description = item.Description
			}
			doc.CellFormat(widths[0], 6, description, "1", 0, "L", false, 0, "")
			doc.CellFormat(widths[1], 6, fmt.Sprintf("%g", a.Quantity), "1", 0, "R", false, 0, "")
			doc.CellFormat(widths[2], 6, money(a.Total), "1", 1, "R", false, 0, "")
			destTotal += a.Total
		}

		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(widths[0]+widths[1], 6, "Total", "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[2], 6, money(destTotal), "1", 1, "R", false, 0, "")
		doc.Ln(2)
	}
}

func writeScope(doc *gofpdf.Fpdf, e entities.Estimate) {
	sections := []struct {
		title string
		lines []string
	}{
		{"Inclusions", e.Scope.Inclusions},
		{"Exclusions", e.Scope.Exclusions},
		{"Delivery Terms", e.Scope.DeliveryTerms},
	}

	for _, section := range sections {
		if len(section.lines) == 0 {
			continue
		}
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, section.title, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		for _, line := range section.lines {
			doc.CellFormat(0, 5, "- "+line, "", 1, "L", false, 0, "")
		}
		doc.Ln(2)
	}

	if strings.TrimSpace(e.Scope.Comments) != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, "Comments", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, e.Scope.Comments, "", "L", false)
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

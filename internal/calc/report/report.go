package report

import (
	"fmt"
	"io"
	"math"
	"time"

	cell "PouchCell/internal/calc/cell"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

const chartTitle = "Battery Performance Metrics"

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Render writes an A4 report of one evaluated cell design to w.
func Render(w io.Writer, meta Meta, in cell.Input, b cell.Breakdown, now time.Time) error {
	if meta.Title == "" {
		meta.Title = "Battery Design Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Report ID: %s", uuid.NewString()))
	pdf.Ln(10)
	if meta.Notes != "" {
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
		pdf.Ln(4)
	}

	metrics := cell.Metrics(b.Result)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Output Metrics")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(200, 0, 0)
	for _, m := range metrics {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", m.Label, m.Text))
		pdf.Ln(6)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	drawChart(pdf, metrics)

	pdf.AddPage()
	inputTable(pdf, tr, in)
	pdf.Ln(8)
	breakdownTable(pdf, b)

	return pdf.Output(w)
}

func drawChart(pdf *gofpdf.Fpdf, metrics []cell.Metric) {
	const plotH = 70.0

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	width := pageW - left - right

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, chartTitle)
	pdf.Ln(14)

	top := pdf.GetY()
	base := top + plotH
	peak := 0.0
	for _, m := range metrics {
		peak = math.Max(peak, m.Value)
	}

	slot := width / float64(len(metrics))
	barW := slot * 0.5
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(left, base, left+width, base)
	pdf.SetFillColor(99, 110, 250)
	pdf.SetFont("Helvetica", "", 9)
	for i, m := range metrics {
		h := 0.0
		if peak > 0 {
			h = m.Value / peak * plotH
		}
		x := left + float64(i)*slot
		if h > 0 {
			pdf.Rect(x+(slot-barW)/2, base-h, barW, h, "F")
		}
		pdf.SetXY(x, base-h-5)
		pdf.CellFormat(slot, 5, m.Text, "", 0, "C", false, 0, "")
		pdf.SetXY(x, base+2)
		pdf.MultiCell(slot, 4, m.Label, "", "C", false)
	}
	pdf.SetY(base + 14)
}

func inputTable(pdf *gofpdf.Fpdf, tr func(string) string, in cell.Input) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Input Parameters")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(35, 6, "Group", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 6, "Parameter", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, "Value", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 6, "Unit", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range cell.Fields() {
		v, _ := in.Get(f.Name)
		pdf.CellFormat(35, 6, f.Group, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, f.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, cell.Fixed2(v), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, tr(f.Unit), "1", 1, "L", false, 0, "")
	}
}

func breakdownTable(pdf *gofpdf.Fpdf, b cell.Breakdown) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Cell Breakdown")
	pdf.Ln(10)

	rows := []struct {
		label string
		value float64
	}{
		{"Cell thickness (mm)", b.CellThicknessMM},
		{"Cell volume (cm3)", b.CellVolumeCM3},
		{"Separator mass loading (mg/cm2)", b.SeparatorLoadingMgCm2},
		{"Cathode weight (g)", b.Weights.Cathode},
		{"Anode weight (g)", b.Weights.Anode},
		{"Separator weight (g)", b.Weights.Separator},
		{"Li foil weight (g)", b.Weights.LithiumFoil},
		{"Al foil weight (g)", b.Weights.AluminumFoil},
		{"Al laminate pouch weight (g)", b.Weights.AluminumPouch},
		{"Al tab weight (g)", b.Weights.AluminumTab},
		{"Ni tab weight (g)", b.Weights.NickelTab},
		{"Electrolyte weight (g)", b.Weights.Electrolyte},
		{"Total cell weight (g)", b.CellWeightG},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(105, 6, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, cell.Fixed2(r.value), "1", 1, "R", false, 0, "")
	}
}

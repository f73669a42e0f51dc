package workbook

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	cell "PouchCell/internal/calc/cell"

	"github.com/xuri/excelize/v2"
)

const (
	InputsSheet    = "Inputs"
	MetricsSheet   = "Metrics"
	BreakdownSheet = "Breakdown"
)

// ParseScenario reads one cell design from the first sheet of a workbook.
// Expected layout: a header row, then parameter name in column A and value
// in column B. Parameters not listed keep their default value.
func ParseScenario(r io.Reader) (cell.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return cell.Input{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return cell.Input{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return cell.Input{}, fmt.Errorf("sheet %q has no parameter rows", sheet)
	}

	in := cell.DefaultInput()
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		if len(row) < 2 {
			return cell.Input{}, fmt.Errorf("row %d: missing value for %s", i+1, name)
		}
		v, err := toFloat(row[1])
		if err != nil {
			return cell.Input{}, fmt.Errorf("row %d: %s: %w", i+1, name, err)
		}
		if err := in.Set(name, v); err != nil {
			return cell.Input{}, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return in, nil
}

// Build lays out inputs, metrics with a column chart, and the weight breakdown.
func Build(in cell.Input, b cell.Breakdown) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, in, b); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, in cell.Input, b cell.Breakdown) error {
	if err := f.SetSheetName("Sheet1", InputsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(InputsSheet, "A1", &[]any{"parameter", "value", "unit", "group"}); err != nil {
		return err
	}
	for i, fd := range cell.Fields() {
		v, _ := in.Get(fd.Name)
		if err := f.SetSheetRow(InputsSheet, cellName(1, i+2), &[]any{fd.Name, v, fd.Unit, fd.Group}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(MetricsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(MetricsSheet, "A1", &[]any{"Metric", "Value", "Display"}); err != nil {
		return err
	}
	metrics := cell.Metrics(b.Result)
	for i, m := range metrics {
		if err := f.SetSheetRow(MetricsSheet, cellName(1, i+2), &[]any{m.Label, m.Value, m.Text}); err != nil {
			return err
		}
	}
	last := len(metrics) + 1
	if err := f.AddChart(MetricsSheet, "E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", MetricsSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", MetricsSheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", MetricsSheet, last),
		}},
		Title:     []excelize.RichTextRun{{Text: "Battery Performance Metrics"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	}); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}

	if _, err := f.NewSheet(BreakdownSheet); err != nil {
		return err
	}
	rows := [][]any{
		{"quantity", "value", "unit"},
		{"cell_thickness", b.CellThicknessMM, "mm"},
		{"cell_volume", b.CellVolumeCM3, "cm³"},
		{"separator_density", b.SeparatorDensity, "g/cm³"},
		{"separator_mass_loading", b.SeparatorLoadingMgCm2, "mg/cm²"},
		{"cathode_mass_loading", b.CathodeLoadingMgCm2, "mg/cm²"},
		{"cathode_weight", b.Weights.Cathode, "g"},
		{"anode_weight", b.Weights.Anode, "g"},
		{"separator_weight", b.Weights.Separator, "g"},
		{"lithium_foil_weight", b.Weights.LithiumFoil, "g"},
		{"aluminum_foil_weight", b.Weights.AluminumFoil, "g"},
		{"aluminum_pouch_weight", b.Weights.AluminumPouch, "g"},
		{"aluminum_tab_weight", b.Weights.AluminumTab, "g"},
		{"nickel_tab_weight", b.Weights.NickelTab, "g"},
		{"electrolyte_weight", b.Weights.Electrolyte, "g"},
		{"cell_weight", b.CellWeightG, "g"},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(BreakdownSheet, cellName(1, i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

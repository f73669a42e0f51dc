package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	cell "PouchCell/internal/calc/cell"
)

func writeResult(w io.Writer, format string, b cell.Breakdown) error {
	if err := b.Check(); err != nil {
		return err
	}
	switch format {
	case "text":
		printMetrics(w, b.Result)
		return nil
	case "breakdown":
		printMetrics(w, b.Result)
		fmt.Fprintln(w)
		printBreakdown(w, b)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b.Result)
	case "csv":
		metrics := cell.Metrics(b.Result)
		return gocsv.Marshal(&metrics, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printMetrics(w io.Writer, r cell.Result) {
	fmt.Fprintln(w, "Output Metrics")
	fmt.Fprintln(w, "==============")
	for _, m := range cell.Metrics(r) {
		fmt.Fprintf(w, "  %-36s %10s\n", m.Label+":", m.Text)
	}
}

func printBreakdown(w io.Writer, b cell.Breakdown) {
	fmt.Fprintln(w, "Breakdown")
	fmt.Fprintln(w, "---------")
	rows := []struct {
		label string
		value float64
		unit  string
	}{
		{"Cell thickness", b.CellThicknessMM, "mm"},
		{"Cell volume", b.CellVolumeCM3, "cm³"},
		{"Separator density", b.SeparatorDensity, "g/cm³"},
		{"Separator mass loading", b.SeparatorLoadingMgCm2, "mg/cm²"},
		{"Cathode mass loading", b.CathodeLoadingMgCm2, "mg/cm²"},
		{"Cathode", b.Weights.Cathode, "g"},
		{"Anode", b.Weights.Anode, "g"},
		{"Separator", b.Weights.Separator, "g"},
		{"Li foil", b.Weights.LithiumFoil, "g"},
		{"Al foil", b.Weights.AluminumFoil, "g"},
		{"Al laminate pouch", b.Weights.AluminumPouch, "g"},
		{"Al tab", b.Weights.AluminumTab, "g"},
		{"Ni tab", b.Weights.NickelTab, "g"},
		{"Electrolyte", b.Weights.Electrolyte, "g"},
		{"Total cell weight", b.CellWeightG, "g"},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-24s %10s %s\n", r.label+":", cell.Fixed2(r.value), r.unit)
	}
}

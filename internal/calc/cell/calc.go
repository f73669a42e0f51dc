package cell

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// volumeCorrection is the empirical packing factor applied to the
// stack envelope volume.
const volumeCorrection = 1.282

type Result struct {
	CapacityAh      float64 `json:"capacity_ah"`
	GravimetricWhKg float64 `json:"gravimetric_energy_density_wh_kg"`
	VolumetricWhL   float64 `json:"volumetric_energy_density_wh_l"`
}

// ComponentWeights are the per-component cell masses in grams.
type ComponentWeights struct {
	Cathode       float64 `json:"cathode_g"`
	Anode         float64 `json:"anode_g"`
	Separator     float64 `json:"separator_g"`
	LithiumFoil   float64 `json:"lithium_foil_g"`
	AluminumFoil  float64 `json:"aluminum_foil_g"`
	AluminumPouch float64 `json:"aluminum_pouch_g"`
	AluminumTab   float64 `json:"aluminum_tab_g"`
	NickelTab     float64 `json:"nickel_tab_g"`
	Electrolyte   float64 `json:"electrolyte_g"`
}

func (w ComponentWeights) Total() float64 {
	return floats.Sum([]float64{
		w.LithiumFoil, w.Cathode, w.Separator, w.Anode,
		w.AluminumFoil, w.AluminumPouch, w.AluminumTab, w.NickelTab,
		w.Electrolyte,
	})
}

// Breakdown carries the intermediates of one evaluation.
type Breakdown struct {
	CellThicknessMM       float64          `json:"cell_thickness_mm"`
	CellVolumeCM3         float64          `json:"cell_volume_cm3"`
	SeparatorDensity      float64          `json:"separator_density_g_cm3"`
	SeparatorLoadingMgCm2 float64          `json:"separator_mass_loading_mg_cm2"`
	CathodeLoadingMgCm2   float64          `json:"cathode_mass_loading_mg_cm2"`
	Weights               ComponentWeights `json:"weights"`
	CellWeightG           float64          `json:"cell_weight_g"`
	Result                Result           `json:"result"`
}

// ErrNotFinite reports an evaluation whose inputs were finite but whose
// intermediates or results overflowed.
var ErrNotFinite = errors.New("result is not a finite number, inputs are out of range")

// Check returns ErrNotFinite if any quantity of b is NaN or infinite.
func (b Breakdown) Check() error {
	w := b.Weights
	for _, v := range []float64{
		b.CellThicknessMM, b.CellVolumeCM3, b.SeparatorDensity,
		b.SeparatorLoadingMgCm2, b.CathodeLoadingMgCm2, b.CellWeightG,
		w.Cathode, w.Anode, w.Separator, w.LithiumFoil, w.AluminumFoil,
		w.AluminumPouch, w.AluminumTab, w.NickelTab, w.Electrolyte,
		b.Result.CapacityAh, b.Result.GravimetricWhKg, b.Result.VolumetricWhL,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotFinite
		}
	}
	return nil
}

// Calculate returns capacity and energy densities of the cell described by in.
func Calculate(in Input, c MaterialConstants) Result {
	return Evaluate(in, c).Result
}

func Evaluate(in Input, c MaterialConstants) Breakdown {
	polymerFrac := in.PolymerWtSep / 100.0
	liSaltFrac := in.LiSaltWtSep / 100.0
	ceramicFrac := in.CeramicWtSep / 100.0
	porosityFrac := in.PorositySep / 100.0

	layers := float64(in.CellLayers)
	area := in.SingleLayerArea

	// both sides of every electrode are coated
	capacity := in.ArealCapacity * area * 2 * layers / 1000

	// μm -> mm; one more Li foil than electrode pairs
	stack := 2 * (in.LayerThickness + in.MatThickness + in.ThicknessSep) * layers
	foil := in.LiFoilThickness * (layers + 1)
	pouch := 2 * c.LaminatePouchThicknessUM
	thickness := (stack + foil + pouch) / 1000

	volume := area * (thickness / 10) * volumeCorrection

	// weight fractions are used as given, without normalisation
	sepDensity := polymerFrac*c.PolymerDensity + liSaltFrac*c.LiSaltDensity + ceramicFrac*c.CeramicDensity
	sepLoading := sepDensity * in.ThicknessSep * (1 - porosityFrac) / 10

	cathodeLoading := 0.0
	if in.CAMWtPercent > 0 {
		cathodeLoading = in.CAMMassLoading / (in.CAMWtPercent / 100)
	}

	w := ComponentWeights{
		Cathode:       cathodeLoading * area * 2 * layers / 1000,
		Anode:         c.DischargedMatLoading * area * layers * 2 / 1000,
		Separator:     sepLoading * area * layers * 2 / 1000,
		LithiumFoil:   (in.LiFoilThickness * c.LiDensity / 10) * area * (layers + 1) / 1000,
		AluminumFoil:  c.AlFoilLoading * area * layers / 1000,
		AluminumPouch: c.AlLaminatePouchLoading * area / 1000,
		AluminumTab:   c.AlTabLoading * area / 1000,
		NickelTab:     c.NiTabLoading * area / 1000,
		// Ah -> mAh -> mg -> g
		Electrolyte: c.ElectrolyteMgPerMAh * capacity * 1000 / 1000,
	}
	weight := w.Total()

	energy := in.CellVoltage * capacity
	grav := 0.0
	if weight > 0 {
		grav = energy / weight * 1000
	}
	vol := 0.0
	if volume > 0 {
		vol = energy / volume * 1000
	}

	return Breakdown{
		CellThicknessMM:       thickness,
		CellVolumeCM3:         volume,
		SeparatorDensity:      sepDensity,
		SeparatorLoadingMgCm2: sepLoading,
		CathodeLoadingMgCm2:   cathodeLoading,
		Weights:               w,
		CellWeightG:           weight,
		Result: Result{
			CapacityAh:      capacity,
			GravimetricWhKg: grav,
			VolumetricWhL:   vol,
		},
	}
}
